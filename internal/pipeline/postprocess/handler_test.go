// internal/pipeline/postprocess/handler_test.go
package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"product-advisor/internal/models"
)

func TestCleanStripsTemplateArtifacts(t *testing.T) {
	in := "<think>tôi cần tính giá</think>iPhone 15 có giá tốt.<|im_end|>"
	out := Clean(in, models.IntentGeneralInfo)
	assert.Equal(t, "iPhone 15 có giá tốt.", out)
}

func TestCleanUnterminatedThinkBlock(t *testing.T) {
	in := "Trả lời ngắn.\n<think>suy nghĩ dở dang không có thẻ đóng"
	out := Clean(in, models.IntentGeneralInfo)
	assert.Equal(t, "Trả lời ngắn.", out)
}

func TestCleanPriceCanonicalForm(t *testing.T) {
	in := "Theo dữ liệu, Giá của iPhone 15 là 22.990.000 VND. Mời bạn tham khảo thêm."
	out := Clean(in, models.IntentPrice)
	assert.Equal(t, "Giá của iPhone 15 là 22.990.000 VND. Mời bạn tham khảo thêm.", out)
}

func TestCleanPriceWithoutPatternKeepsText(t *testing.T) {
	in := "Không có thông tin giá"
	assert.Equal(t, in, Clean(in, models.IntentPrice))
}

func TestCleanRemovesBoilerplateLines(t *testing.T) {
	in := "Dựa trên thông tin được cung cấp, đây là kết quả:\n## iPhone 15\n- Pin tốt"
	out := Clean(in, models.IntentGeneralInfo)
	assert.Equal(t, "## iPhone 15\n- Pin tốt", out)
}

func TestCleanBulletConversionWithoutHeadings(t *testing.T) {
	in := "- Pin tốt\n- Camera đẹp"
	out := Clean(in, models.IntentAdvice)
	assert.Equal(t, "• Pin tốt\n• Camera đẹp", out)
}

func TestCleanKeepsDashesUnderHeadings(t *testing.T) {
	in := "## iPhone 15\n- Pin tốt"
	out := Clean(in, models.IntentAdvice)
	assert.Equal(t, "## iPhone 15\n- Pin tốt", out)
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []struct {
		text   string
		intent models.Intent
	}{
		{"<think>x</think>## iPhone 15\n- Pin tốt", models.IntentGeneralInfo},
		{"- Pin tốt\n- Camera đẹp", models.IntentAdvice},
		{"Giá của iPhone 15 là 22.990.000", models.IntentPrice},
	}

	for _, tt := range inputs {
		once := Clean(tt.text, tt.intent)
		twice := Clean(once, tt.intent)
		assert.Equal(t, once, twice, tt.text)
	}
}
