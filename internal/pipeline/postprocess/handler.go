// internal/pipeline/postprocess/handler.go
package postprocess

import (
	"regexp"
	"strings"

	"product-advisor/internal/models"
)

const TaskType = "response-postprocessor"

var (
	imBlockPattern   = regexp.MustCompile(`(?s)<\|im_start\|>.*?<\|im_end\|>`)
	imStartPattern   = regexp.MustCompile(`(?s)<\|im_start\|>assistant`)
	imEndPattern     = regexp.MustCompile(`(?s)<\|im_end\|>`)
	thinkPattern     = regexp.MustCompile(`(?s)<think>.*?(</think>|$)`)
	priceLinePattern = regexp.MustCompile(`(?i)giá của (.+?) là (.+)`)
)

// boilerplate openings the model keeps producing despite the prompt rules.
var unwantedLineFragments = []string{
	"dựa trên thông tin được cung cấp",
	"dưới đây là tóm tắt",
	"tên sản phẩm",
	"mô tả sản phẩm",
}

// Clean normalizes a raw model reply for display. Template artifacts are
// stripped first; the price intent is then reduced to its canonical one-line
// form, every other intent gets boilerplate lines removed. Clean is
// idempotent: running it twice yields the same text.
func Clean(text string, intent models.Intent) string {
	text = imBlockPattern.ReplaceAllString(text, "")
	text = imStartPattern.ReplaceAllString(text, "")
	text = imEndPattern.ReplaceAllString(text, "")
	text = thinkPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if intent == models.IntentPrice {
		if m := priceLinePattern.FindStringSubmatch(text); m != nil {
			return "Giá của " + strings.TrimSpace(m[1]) + " là " + strings.TrimSpace(m[2])
		}
		return text
	}

	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		skip := false
		for _, fragment := range unwantedLineFragments {
			if strings.Contains(lower, fragment) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		cleaned = append(cleaned, strings.TrimLeft(line, ".,:; "))
	}
	result := strings.Join(cleaned, "\n")

	// Without Markdown headings, dashes read better as bullets.
	if !hasHeading(result) {
		result = strings.ReplaceAll(result, "- ", "• ")
	}
	return strings.TrimSpace(result)
}

func hasHeading(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}
