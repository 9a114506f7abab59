// internal/pipeline/prompt/composer.go
package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"product-advisor/internal/common/logger"
	"product-advisor/internal/models"
)

const TaskType = "prompt-composer"

// Composer assembles the final generation prompt from the retrieved context
// and the intent-specific instruction. Composition is pure: no model calls,
// no I/O.
type Composer struct {
	logger logger.Logger
}

func NewComposer(log logger.Logger) *Composer {
	return &Composer{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Input carries everything the composer needs for one turn. UserQuery is the
// original question, not the enriched rewrite: the rewrite exists for
// retrieval, the user's own words drive the answer.
type Input struct {
	UserQuery string
	Internal  []models.Product
	Web       []models.WebSnippet
	Intent    models.Intent
	History   []models.ConversationTurn
	Params    *models.QueryParameters
}

// Execute renders the full prompt.
func (c *Composer) Execute(in Input) string {
	var ctxParts []string

	if len(in.History) > 0 {
		products := "sản phẩm"
		if len(in.Params.Products) > 0 {
			products = strings.Join(in.Params.Products, ", ")
		}
		category := "danh mục"
		if len(in.Params.Category) > 0 {
			category = strings.Join(in.Params.Category, ", ")
		}
		summary := fmt.Sprintf(
			"Tóm tắt hội thoại: Người dùng đã trao đổi về các sản phẩm/chủ đề liên quan đến %s và %s. Cụ thể là: %s.",
			products, category, in.UserQuery)
		ctxParts = append(ctxParts, "### HỘI THOẠI TRƯỚC ĐÓ\n"+summary+"\n")
	}

	if len(in.Internal) > 0 {
		lines := make([]string, 0, len(in.Internal))
		for _, p := range in.Internal {
			dump, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				c.logger.Warn("Product serialization failed, skipping", map[string]interface{}{
					"productId": p.ID,
					"error":     err.Error(),
				})
				continue
			}
			lines = append(lines, "* "+string(dump))
		}
		ctxParts = append(ctxParts, "### THÔNG TIN TỪ CƠ SỞ DỮ LIỆU NỘI BỘ\n"+strings.Join(lines, "\n"))
	}

	if len(in.Web) > 0 {
		web := in.Web
		if len(web) > 3 {
			web = web[:3]
		}
		lines := make([]string, 0, len(web))
		for _, s := range web {
			lines = append(lines, "* "+s.Format())
		}
		ctxParts = append(ctxParts, "### THÔNG TIN TỪ WEB\n"+strings.Join(lines, "\n"))
	}

	ctxBlock := "(Không có ngữ cảnh bổ sung.)"
	if len(ctxParts) > 0 {
		ctxBlock = strings.Join(ctxParts, "\n\n")
	}

	return fmt.Sprintf(promptFrame, ctxBlock, c.instruction(in), in.UserQuery)
}

// instruction picks the intent-specific directive. The compare variant is
// interpolated with the extracted product names and criteria; a price-range
// bearing extraction gets the range variant interpolated with the actual
// bounds, whatever the intent, unless the fallback instruction is in force.
func (c *Composer) instruction(in Input) string {
	if in.Intent == models.IntentCompare && len(in.Params.Products) > 0 {
		criteria := []string{"giá cả", "hiệu năng", "ưu nhược điểm"}
		if len(in.Params.ComparativeAttributes) > 0 {
			criteria = in.Params.ComparativeAttributes
		}
		return fmt.Sprintf("So sánh các sản phẩm %s theo các tiêu chí: %s. ",
			strings.Join(in.Params.Products, " và "), strings.Join(criteria, ", ")) + instructionCompare
	}

	if in.Params.PriceRange != nil && in.Intent != models.IntentFallback {
		minStr := strconv.FormatFloat(in.Params.PriceRange.MinPrice, 'f', -1, 64)
		maxStr := "không giới hạn"
		if in.Params.PriceRange.MaxPrice > 0 {
			maxStr = strconv.FormatFloat(in.Params.PriceRange.MaxPrice, 'f', -1, 64)
		}
		return fmt.Sprintf("Liệt kê các sản phẩm phù hợp với khoảng giá từ %s đến %s. ",
			minStr, maxStr) + instructionPriceRange
	}

	if instr, ok := intentInstructions[in.Intent]; ok {
		return instr
	}
	return instructionFull
}
