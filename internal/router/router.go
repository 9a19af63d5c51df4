// -----------------------------------------------------------------------
// Package router answers natural-language stock questions. A question is
// normalized, entities are extracted, and an ordered rule list is walked
// until a handler produces a response. Handlers may decline by returning
// nil, which passes the question to the next rule.
// -----------------------------------------------------------------------

package router

import (
	"context"
	"errors"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/extract"
	"github.com/ternarybob/advisor/internal/interfaces"
	"github.com/ternarybob/advisor/internal/models"
	"github.com/ternarybob/advisor/internal/session"
)

// Router routes questions to data lookups and formats the answers.
type Router struct {
	market    interfaces.MarketDataService
	alt       interfaces.AltDataService
	charts    interfaces.ChartService
	extractor *extract.Extractor
	logger    arbor.ILogger
	rules     []rule
}

// request carries one question through the rule cascade.
type request struct {
	ctx      context.Context
	session  *session.Session
	question *models.Question
	entities *models.ExtractedEntities
}

// rule is one (predicate, handler) pair. Rules are evaluated in order and
// the first handler that returns a non-nil response wins.
type rule struct {
	name   string
	match  func(*request) bool
	handle func(*Router, *request) *models.Response
}

// New creates a Router over the given data services.
func New(market interfaces.MarketDataService, alt interfaces.AltDataService, charts interfaces.ChartService, logger arbor.ILogger) *Router {
	r := &Router{
		market:    market,
		alt:       alt,
		charts:    charts,
		extractor: extract.NewExtractor(),
		logger:    logger,
	}
	r.rules = buildRules()
	return r
}

// Route answers one question within a session. It always returns a response;
// failures surface as error-tagged responses, never as Go errors.
func (r *Router) Route(ctx context.Context, sess *session.Session, raw string) *models.Response {
	question := models.NewQuestion(raw)
	if question.IsEmpty() {
		return r.finish(sess, models.ErrorResponse("Please ask a question about a stock, for example: 'What is the current price of AAPL?'"))
	}

	entities, err := r.extractor.Extract(question)
	if err != nil {
		if errors.Is(err, extract.ErrAmbiguousOptionQuery) {
			return r.finish(sess, models.ErrorResponse("I couldn't identify a stock symbol in your option question. Please specify a company name or ticker symbol, for example: 'Will my TSLA $440 call be profitable?'"))
		}
		return r.finish(sess, models.ErrorResponse("Error analyzing question: "+err.Error()))
	}

	req := &request{
		ctx:      ctx,
		session:  sess,
		question: question,
		entities: entities,
	}

	for _, rl := range r.rules {
		if !rl.match(req) {
			continue
		}
		resp := rl.handle(r, req)
		if resp == nil {
			continue
		}
		r.logger.Debug().
			Str("rule", rl.name).
			Str("response_type", string(resp.Type)).
			Msg("Question routed")
		return r.finish(sess, resp)
	}

	// Unreachable as long as the final rule is a catch-all.
	return r.finish(sess, models.ErrorResponse("I couldn't understand your question. Try asking about a stock price, news, or options."))
}

// finish records the response on the session before returning it. Chart
// follow-ups depend on seeing the immediately preceding response.
func (r *Router) finish(sess *session.Session, resp *models.Response) *models.Response {
	if sess != nil {
		sess.SetLastResponse(resp)
	}
	return resp
}
