package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/advisor/internal/models"
)

var (
	personalOptionRe = regexp.MustCompile(`\b(my|i\s+have|i\s+own|i\s+bought|i\s+purchased|will\s+my)\b.*\b(option|call|put)\b`)

	recommendIntentRe = regexp.MustCompile(`\b(which|what|recommend|best|good|profitable)\b.*\b(option|call|put|strike)\b`)
	recommendVerbRe   = regexp.MustCompile(`\b(buy|purchase|get|invest)\b`)
	budgetRe          = regexp.MustCompile(`\$?(\d+(?:,\d+)?(?:\.\d+)?)\s*(?:dollars?|usd|budget)?`)

	chartRequestRe  = regexp.MustCompile(`(chart|graph|plot).*?(for|of)\s+(\w+)`)
	chartShowRe     = regexp.MustCompile(`show\s+(\w+)\s+(chart|graph)`)
	chartSymbolRe   = regexp.MustCompile(`(chart|graph|plot).*?(for|of)\s+([A-Za-z]{1,5})`)
	chartShowSymRe  = regexp.MustCompile(`show\s+([A-Za-z]{1,5})\s+(chart|graph)`)
	forSymbolRe     = regexp.MustCompile(`for ([A-Za-z]{1,5})`)
	govContractsRe  = regexp.MustCompile(`(government|gov|federal).*?(contract|contracts)`)
	offExchangeRe   = regexp.MustCompile(`(off[- ]exchange|short volume|short interest)`)
	wikipediaRe     = regexp.MustCompile(`(wikipedia|wiki).*?(views|traffic|visits)`)
	strikeChanceRe  = regexp.MustCompile(`(chance|chances|likelihood|probability|odds|will).*?(hit|reach).*?(strike|price)`)
	plainChancesRe  = regexp.MustCompile(`what are the chances`)
	whichOptionsRe  = regexp.MustCompile(`which (call|put) options? (should|to) (buy|purchase)`)
	suggestOptsRe   = regexp.MustCompile(`(recommend|suggest).*options`)
	optionsBudgetRe = regexp.MustCompile(`options?.*(with|for) \$\d+`)

	profitableOptionRe = regexp.MustCompile(`will.*option be profitable`)
	profitVerbOptionRe = regexp.MustCompile(`(profit|make money|gain).*option`)
	optionSymbolRe     = regexp.MustCompile(`(call|put).*?([A-Za-z]{1,5})`)
	symbolOptionRe     = regexp.MustCompile(`([A-Za-z]{1,5})\s+(call|put)`)
	dollarAmountRe     = regexp.MustCompile(`\$(\d+)`)
	longExpiryRe       = regexp.MustCompile(`(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}`)

	predictTargetRe  = regexp.MustCompile(`will\s+\w+\s+(hit|reach|get to|go to|go up to|go above|exceed|cross)\s+\$\d+`)
	targetByRe       = regexp.MustCompile(`(hit|reach|get to|go to|go up to|go above|exceed|cross)\s+\$\d+\s+(?:by|before|until)`)
	willHitSymbolRe  = regexp.MustCompile(`will\s+(\w{1,5})\s+(hit|reach)`)
	targetTailSymRe  = regexp.MustCompile(`(hit|reach|get to|go to)\s+\$\d+\s+(?:by|before|until).*?(\w{1,5})`)
	predictionCommon = []string{"aapl", "msft", "amzn", "googl", "goog", "meta", "tsla", "nvda", "nflx", "dis"}
)

// buildRules returns the rule cascade in evaluation order. Rule order is
// load-bearing: specific intents (personal options, charts, data feeds) must
// win over the generic keyword dispatch at the bottom.
func buildRules() []rule {
	return []rule{
		{
			name: "personal_option",
			match: func(req *request) bool {
				return personalOptionRe.MatchString(req.question.Normalized)
			},
			handle: handlePersonalOption,
		},
		{
			name: "option_recommendations",
			match: func(req *request) bool {
				return recommendIntentRe.MatchString(req.question.Normalized) &&
					recommendVerbRe.MatchString(req.question.Normalized)
			},
			handle: handleOptionRecommendationIntent,
		},
		{
			name: "chart_request",
			match: func(req *request) bool {
				return chartRequestRe.MatchString(req.question.Normalized) ||
					chartShowRe.MatchString(req.question.Normalized)
			},
			handle: handleChartRequest,
		},
		{
			name: "chart_followup",
			match: func(req *request) bool {
				q := req.question.Normalized
				return q == "daily" || q == "weekly" || q == "monthly"
			},
			handle: handleChartFollowup,
		},
		{
			name: "gov_contracts",
			match: func(req *request) bool {
				return govContractsRe.MatchString(req.question.Normalized)
			},
			handle: handleGovContracts,
		},
		{
			name: "offexchange",
			match: func(req *request) bool {
				return offExchangeRe.MatchString(req.question.Normalized)
			},
			handle: handleOffExchange,
		},
		{
			name: "wikipedia",
			match: func(req *request) bool {
				return wikipediaRe.MatchString(req.question.Normalized)
			},
			handle: handleWikipedia,
		},
		{
			name: "option_context_followup",
			match: func(req *request) bool {
				q := req.question.Normalized
				return strikeChanceRe.MatchString(q) || plainChancesRe.MatchString(q)
			},
			handle: handleOptionContextFollowup,
		},
		{
			name: "option_recommendations_explicit",
			match: func(req *request) bool {
				q := req.question.Normalized
				return whichOptionsRe.MatchString(q) || suggestOptsRe.MatchString(q) || optionsBudgetRe.MatchString(q)
			},
			handle: handleExplicitRecommendations,
		},
		{
			name: "option_profitability",
			match: func(req *request) bool {
				q := req.question.Normalized
				return profitableOptionRe.MatchString(q) || profitVerbOptionRe.MatchString(q)
			},
			handle: handleOptionProfitability,
		},
		{
			name: "price_target",
			match: func(req *request) bool {
				q := req.question.Normalized
				return predictTargetRe.MatchString(q) || targetByRe.MatchString(q)
			},
			handle: handlePriceTarget,
		},
		{
			name: "keyword_dispatch",
			match: func(req *request) bool {
				return true
			},
			handle: handleKeywordDispatch,
		},
	}
}

// handlePersonalOption answers questions about an option position the caller
// holds. The rule only fires when the symbol literally appears in the
// question and at least one option detail was extracted; otherwise the
// question falls through to the more generic option rules.
func handlePersonalOption(r *Router, req *request) *models.Response {
	ents := req.entities
	if len(ents.Symbols) == 0 || !ents.HasOptionDetail() {
		return nil
	}
	upper := strings.ToUpper(req.question.Normalized)
	mentioned := false
	for _, sym := range ents.Symbols {
		if strings.Contains(upper, sym) {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return nil
	}

	symbol := ents.PrimarySymbol()
	req.session.RememberOption(symbol, ents)
	req.session.FillFromContext(ents)

	return r.formatPersonalOption(req.ctx, symbol, ents, req.question.Normalized)
}

// handleOptionRecommendationIntent covers "which options should I buy for X"
// style questions that also extract a symbol the usual way.
func handleOptionRecommendationIntent(r *Router, req *request) *models.Response {
	if len(req.entities.Symbols) == 0 {
		return nil
	}

	budget := "1000"
	if m := budgetRe.FindStringSubmatch(req.question.Normalized); m != nil {
		budget = strings.ReplaceAll(m[1], ",", "")
	}
	return r.formatOptionRecommendations(req.ctx, req.entities.PrimarySymbol(), budget)
}

// handleChartRequest builds chart links for "show me a chart for X".
func handleChartRequest(r *Router, req *request) *models.Response {
	q := req.question.Normalized

	var symbol string
	if m := chartSymbolRe.FindStringSubmatch(q); m != nil {
		symbol = strings.ToUpper(m[3])
	} else if m := chartShowSymRe.FindStringSubmatch(q); m != nil {
		symbol = strings.ToUpper(m[1])
	}
	if symbol == "" {
		return nil
	}
	return r.formatChart(symbol)
}

// handleChartFollowup resolves "daily" / "weekly" / "monthly" against the
// chart links offered in the previous response.
func handleChartFollowup(r *Router, req *request) *models.Response {
	last := req.session.LastResponse()
	if last == nil || last.Type != models.ResponseTypeChart {
		return nil
	}
	links, ok := last.Data.(*models.ChartLinks)
	if !ok {
		return nil
	}
	timeframe := req.question.Normalized
	url := links.URLFor(timeframe)
	if url == "" {
		return nil
	}
	return &models.Response{
		Type:    models.ResponseTypeInfo,
		Symbol:  last.Symbol,
		Data:    url,
		Message: fmt.Sprintf("Opening %s chart for %s...", timeframe, last.Symbol),
	}
}

func handleGovContracts(r *Router, req *request) *models.Response {
	m := forSymbolRe.FindStringSubmatch(req.question.Normalized)
	if m == nil {
		return nil
	}
	return r.formatGovContracts(req.ctx, strings.ToUpper(m[1]))
}

func handleOffExchange(r *Router, req *request) *models.Response {
	m := forSymbolRe.FindStringSubmatch(req.question.Normalized)
	if m == nil {
		return nil
	}
	return r.formatOffExchange(req.ctx, strings.ToUpper(m[1]))
}

func handleWikipedia(r *Router, req *request) *models.Response {
	m := forSymbolRe.FindStringSubmatch(req.question.Normalized)
	if m == nil {
		return nil
	}
	return r.formatWikipedia(req.ctx, strings.ToUpper(m[1]))
}

// handleOptionContextFollowup answers "what are the chances it hits the
// strike" against the option remembered in the session.
func handleOptionContextFollowup(r *Router, req *request) *models.Response {
	ctx := req.session.OptionContext()
	if ctx.Symbol == "" {
		return nil
	}

	strike := ""
	if ctx.StrikePrice != nil {
		strike = fmt.Sprintf("%g", *ctx.StrikePrice)
	}
	expiry := ctx.Expiry.Display(req.question.Normalized)
	synthetic := fmt.Sprintf("will %s reach $%s by %s?", strings.ToLower(ctx.Symbol), strike, expiry)
	return r.formatPrediction(req.ctx, ctx.Symbol, synthetic)
}

// handleExplicitRecommendations covers the "for SYM" phrasing of options
// recommendation questions.
func handleExplicitRecommendations(r *Router, req *request) *models.Response {
	m := forSymbolRe.FindStringSubmatch(req.question.Normalized)
	if m == nil {
		return nil
	}

	budget := ""
	if b := dollarAmountRe.FindStringSubmatch(req.question.Normalized); b != nil {
		budget = b[1]
	}
	return r.formatOptionRecommendations(req.ctx, strings.ToUpper(m[1]), budget)
}

// handleOptionProfitability answers "will my option be profitable" questions
// that did not qualify as a full personal option query. The extracted
// symbols are preferred; the inline patterns only run when extraction found
// nothing.
func handleOptionProfitability(r *Router, req *request) *models.Response {
	q := req.question.Normalized

	symbol := req.entities.PrimarySymbol()
	if symbol == "" {
		if m := symbolOptionRe.FindStringSubmatch(q); m != nil {
			symbol = strings.ToUpper(m[1])
		} else if m := optionSymbolRe.FindStringSubmatch(q); m != nil {
			symbol = strings.ToUpper(m[2])
		}
	}
	if symbol == "" {
		return nil
	}

	var optionType models.OptionType
	switch {
	case strings.Contains(q, "call"):
		optionType = models.OptionTypeCall
	case strings.Contains(q, "put"):
		optionType = models.OptionTypePut
	default:
		optionType = models.OptionTypeUnknown
	}

	var strike *float64
	if req.entities.StrikePrice != nil {
		strike = req.entities.StrikePrice
	}

	expiry := ""
	if m := longExpiryRe.FindString(q); m != "" {
		expiry = m
	} else if req.entities.Expiry != nil {
		expiry = req.entities.Expiry.Display(q)
	}

	return r.formatOptionProfitability(req.ctx, symbol, optionType, strike, expiry)
}

// handlePriceTarget answers "will X hit $N" questions.
func handlePriceTarget(r *Router, req *request) *models.Response {
	q := req.question.Normalized

	for _, sym := range predictionCommon {
		if strings.Contains(q, sym) {
			return r.formatPrediction(req.ctx, strings.ToUpper(sym), q)
		}
	}

	var symbol string
	if m := willHitSymbolRe.FindStringSubmatch(q); m != nil {
		symbol = strings.ToUpper(m[1])
	} else if m := targetTailSymRe.FindStringSubmatch(q); m != nil {
		symbol = strings.ToUpper(m[2])
	}
	if symbol == "" {
		return nil
	}
	return r.formatPrediction(req.ctx, symbol, q)
}

// handleKeywordDispatch is the terminal rule: require a symbol, then pick
// the feed by keyword priority.
func handleKeywordDispatch(r *Router, req *request) *models.Response {
	if len(req.entities.Symbols) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeNoSymbol,
			Message: "I couldn't identify a specific stock symbol in your question. Please mention a stock symbol like AAPL, MSFT, or TSLA.",
		}
	}
	return r.dispatchByKeyword(req.ctx, req.entities.PrimarySymbol(), req.question.Normalized)
}
