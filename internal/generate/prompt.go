package generate

import "fmt"

// SystemPrompt fixes the output contract: one self-contained playable HTML
// document, no comments, raw HTML only.
const SystemPrompt = `You are an expert web game developer. Your task is to create a complete, playable, single-file HTML game based on the user's prompt. RULES: ALL HTML, CSS, and JavaScript MUST be in a single .html file. The game must be self-contained and fully playable. Do not include comments. Output only raw HTML code.`

const userRequestFormat = "%s\n\nUser's request: \"%s\""

func ComposePrompt(userPrompt string) string {
	return fmt.Sprintf(userRequestFormat, SystemPrompt, userPrompt)
}
