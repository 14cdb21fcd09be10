package prompt

import "fmt"

// GetSystemPrompt is the fixed instruction for brand suggestions.
func GetSystemPrompt() string {
	return "You are an assistant that finds relevant brands based on website content."
}

// GetUserPrompt embeds the page text and asks for a newline separated list.
func GetUserPrompt(pageContent string) string {
	return fmt.Sprintf("The webpage content: %s \n\nCan you suggest a list of relevant brands and product categories matching the context? Respond as a list.", pageContent)
}

// GetBannerPrompt builds the image generation prompt for a brand.
func GetBannerPrompt(brand string) string {
	return fmt.Sprintf("Create a banner advertisement image for %q", brand)
}
