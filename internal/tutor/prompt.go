package tutor

import (
	"fmt"
	"strings"
)

// systemInstruction builds the tutor persona prompt. The language directive
// leads so it survives even when the model skims the instruction.
func systemInstruction(level RigorLevel, language string) string {
	return fmt.Sprintf(`You MUST conduct the entire conversation, including your introduction, in %[1]s. All of your responses and questions must be in %[1]s.

You are an expert physics tutor named Physicus Aurelius Maximus (PAM). Your goal is to help students study for their physics tests at the %[2]s level using the Socratic method. Do not give direct answers. Instead, ask probing and guiding questions to help the student arrive at the answer themselves. Tailor the complexity of your questions and explanations to a %[2]s audience. Break down complex topics like Newtonian mechanics, electromagnetism, or quantum physics into smaller, manageable steps appropriate for this level. If the student is wrong, gently guide them to recognize their mistake without directly pointing it out. Keep your tone encouraging and inquisitive. Start the conversation by introducing yourself and asking what topic the student wants to study. Your responses should be concise and focused on guiding the student.

IMPORTANT: When presenting mathematical equations or formulas, you MUST enclose them in LaTeX format for them to render correctly.
- For block content (on its own line), use double dollar signs: $$...$$. Example: $$F = ma$$
- For inline content, use single dollar signs: $...$. Example: The equation for energy is $E = mc^2$.
This is critical. Do not use markdown code fences (like `+"```"+`) around the LaTeX.`, language, level)
}

// greetingTurn is the synthetic first message that makes the tutor open
// the conversation; it is never shown to the student.
const greetingTurn = "Introduce yourself."

func buildTopicsPrompt(history string, level RigorLevel, language string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Analyze the following conversation between a %s level physics student and a tutor. ", level))
	b.WriteString("Your task is to identify and extract the main physics topics, concepts, and formulas discussed.\n\n")
	b.WriteString(fmt.Sprintf("Please respond ONLY with a JSON object containing a single key \"topics\", which is an array of strings. Each string should be a distinct topic. The topics must be in %s.\n\n", language))
	b.WriteString("Conversation History:\n")
	b.WriteString(history)

	return b.String()
}

func buildWorksheetPrompt(topics []string, level RigorLevel, language string) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant that creates practice worksheets for students based on a list of physics topics. ")
	b.WriteString(fmt.Sprintf("Your task is to generate a worksheet in %s that covers the key concepts from the following list: %s.\n\n", language, strings.Join(topics, ", ")))
	b.WriteString(fmt.Sprintf("The difficulty should be appropriate for a %s student.\n\n", level))
	b.WriteString("The worksheet should have a clear title, a set of 5-7 questions (a mix of multiple-choice, short-answer, and problems), and a separate answer key at the end.\n\n")
	b.WriteString(fmt.Sprintf("Please respond ONLY with a JSON object that matches the provided schema. Ensure all text, including the title, questions, and answers, is in %s. ", language))
	b.WriteString("If the concepts involve formulas, include them in the questions and answers using LaTeX format (e.g., $v = v_0 + at$ or $$F_{net} = ma$$).")

	return b.String()
}
