package subscription

import "regexp"

var subscriptionURL = regexp.MustCompile(`https?://[-A-Za-z0-9+&@#/%?=~_|!:,.;]+[-A-Za-z0-9+&@#/%=~_|]`)

// ExtractURLs returns every link in text in order of appearance, duplicates
// included. Trailing punctuation such as "." or "," is not captured.
func ExtractURLs(text string) []string {
	return subscriptionURL.FindAllString(text, -1)
}
