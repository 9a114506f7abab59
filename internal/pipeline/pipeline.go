// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"product-advisor/internal/common/errors"
	"product-advisor/internal/common/logger"
	"product-advisor/internal/common/metrics"
	"product-advisor/internal/models"
	"product-advisor/internal/pipeline/enrich"
	"product-advisor/internal/pipeline/extract"
	"product-advisor/internal/pipeline/generate"
	"product-advisor/internal/pipeline/postprocess"
	"product-advisor/internal/pipeline/prompt"
	"product-advisor/internal/pipeline/retrieve"
	"product-advisor/internal/pipeline/scope"
	"product-advisor/internal/pipeline/websearch"
)

// greetingReplies short-circuits small talk before any model call. Matching
// is case-insensitive substring on the normalized question; order matters
// because "chào" is a substring of "xin chào".
var greetingReplies = []struct {
	greeting string
	reply    string
}{
	{"xin chào", "Chào bạn! Tôi là trợ lý tư vấn sản phẩm, có thể giúp gì cho bạn?"},
	{"hello", "Chào bạn, tôi là trợ lý AI chuyên về sản phẩm. Hãy cho tôi biết bạn cần gì."},
	{"chào", "Chào bạn, tôi ở đây để hỗ trợ bạn. Bạn có câu hỏi nào về sản phẩm không?"},
}

// Tracer abstracts span creation so the pipeline works with tracing off.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
}

// Config holds the per-turn behavior knobs.
type Config struct {
	HistoryWindow  int
	UseWebFallback bool
	AttributeKeys  []string
}

// Pipeline wires the stages of one answer turn in fixed order. Stages
// degrade individually; Answer itself never returns an error to the user
// path, only text.
type Pipeline struct {
	config    Config
	scope     *scope.Handler
	enrich    *enrich.Handler
	extract   *extract.Handler
	retrieve  *retrieve.Handler
	websearch *websearch.Handler
	composer  *prompt.Composer
	generate  *generate.Handler
	tracer    Tracer
	logger    logger.Logger
}

func New(
	config Config,
	scopeHandler *scope.Handler,
	enrichHandler *enrich.Handler,
	extractHandler *extract.Handler,
	retrieveHandler *retrieve.Handler,
	websearchHandler *websearch.Handler,
	composer *prompt.Composer,
	generateHandler *generate.Handler,
	tracer Tracer,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		config:    config,
		scope:     scopeHandler,
		enrich:    enrichHandler,
		extract:   extractHandler,
		retrieve:  retrieveHandler,
		websearch: websearchHandler,
		composer:  composer,
		generate:  generateHandler,
		tracer:    tracer,
		logger:    log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// Answer processes one user question against the conversation history and
// returns the reply text.
func (p *Pipeline) Answer(ctx context.Context, userQuery string, history []models.ConversationTurn) string {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.answer")
	defer span.End()

	// Greeting shortcut: zero model calls.
	normalized := strings.ToLower(strings.TrimSpace(userQuery))
	for _, g := range greetingReplies {
		if strings.Contains(normalized, g.greeting) {
			span.SetAttributes(attribute.String("outcome", "greeting"))
			return g.reply
		}
	}

	if p.runScope(ctx, userQuery) == scope.OutOfScope {
		span.SetAttributes(attribute.String("outcome", "out_of_scope"))
		return errors.MsgOutOfScope
	}

	window := models.Window(history, p.config.HistoryWindow)
	enrichedQuery := p.runEnrich(ctx, userQuery, window)

	params := p.runExtract(ctx, enrichedQuery)
	if params.Intent == models.IntentOutOfScope {
		span.SetAttributes(attribute.String("outcome", "intent_out_of_scope"))
		return errors.MsgIntentOutOfScope
	}
	span.SetAttributes(attribute.String("intent", string(params.Intent)))

	internal := p.runRetrieve(ctx, enrichedQuery, params)

	var web []models.WebSnippet
	if len(internal) == 0 && p.config.UseWebFallback {
		web = p.runWebSearch(ctx, enrichedQuery, params)
	}

	// With no context at all the composer switches to the fallback
	// instruction; sampling still follows the extracted intent.
	promptIntent := params.Intent
	if len(internal) == 0 && len(web) == 0 {
		promptIntent = models.IntentFallback
	}

	finalPrompt := p.composer.Execute(prompt.Input{
		UserQuery: userQuery,
		Internal:  internal,
		Web:       web,
		Intent:    promptIntent,
		History:   window,
		Params:    params,
	})

	reply := p.runGenerate(ctx, finalPrompt, params.Intent)
	return postprocess.Clean(reply, params.Intent)
}

func (p *Pipeline) runScope(ctx context.Context, userQuery string) string {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.scope")
	defer span.End()
	defer observeStage(scope.TaskType)()
	return p.scope.Execute(ctx, userQuery)
}

func (p *Pipeline) runEnrich(ctx context.Context, userQuery string, window []models.ConversationTurn) string {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.enrich")
	defer span.End()
	defer observeStage(enrich.TaskType)()
	return p.enrich.Execute(ctx, userQuery, window)
}

func (p *Pipeline) runExtract(ctx context.Context, enrichedQuery string) *models.QueryParameters {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.extract")
	defer span.End()
	defer observeStage(extract.TaskType)()
	return p.extract.Execute(ctx, enrichedQuery, p.config.AttributeKeys)
}

func (p *Pipeline) runRetrieve(ctx context.Context, enrichedQuery string, params *models.QueryParameters) []models.Product {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.retrieve")
	defer span.End()
	defer observeStage(retrieve.TaskType)()

	internal, err := p.retrieve.Execute(ctx, enrichedQuery, params)
	if err != nil {
		metrics.PipelineStageFailures.WithLabelValues(retrieve.TaskType, string(errors.CodeOf(err))).Inc()
		p.logger.Warn("Retrieval failed, continuing without internal context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return internal
}

func (p *Pipeline) runWebSearch(ctx context.Context, enrichedQuery string, params *models.QueryParameters) []models.WebSnippet {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.websearch")
	defer span.End()
	defer observeStage(websearch.TaskType)()

	searchQuery := params.WebSearchQuery
	if searchQuery == "" {
		searchQuery = enrichedQuery
	}

	snippets, err := p.websearch.Execute(ctx, searchQuery)
	if err != nil {
		metrics.PipelineStageFailures.WithLabelValues(websearch.TaskType, string(errors.CodeOf(err))).Inc()
		p.logger.Warn("Web search failed, continuing without web context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return websearch.FilterVietnamese(snippets)
}

func (p *Pipeline) runGenerate(ctx context.Context, finalPrompt string, intent models.Intent) string {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.generate")
	defer span.End()
	defer observeStage(generate.TaskType)()
	return p.generate.Execute(ctx, finalPrompt, intent)
}

// observeStage counts the stage call and returns a closure recording its
// duration.
func observeStage(stage string) func() {
	metrics.PipelineStageTotal.WithLabelValues(stage).Inc()
	start := time.Now()
	return func() {
		metrics.PipelineStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
