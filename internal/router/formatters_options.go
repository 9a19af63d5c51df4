package router

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ternarybob/advisor/internal/models"
)

var (
	profitIntentRe = regexp.MustCompile(`will.*profitable|profit|make money|gain`)
	timeFrameRe    = regexp.MustCompile(`(by|before|until)\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}`)
	relativeTimeRe = regexp.MustCompile(`in\s+(\d+)\s+(day|week|month|year)s?`)
)

// formatPersonalOption analyzes an option position the caller holds. The
// depth of the answer depends on whether the question asks about
// profitability or just describes the position.
func (r *Router) formatPersonalOption(ctx context.Context, symbol string, ents *models.ExtractedEntities, question string) *models.Response {
	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		return models.ErrorResponse(fmt.Sprintf("Error retrieving current price for %s: %v", symbol, err))
	}
	currentPrice := quote.Price

	strike := 0.0
	if ents.StrikePrice != nil {
		strike = *ents.StrikePrice
	}
	optionType := ents.OptionType
	if optionType == models.OptionTypeUnknown {
		optionType = models.OptionTypeCall
	}
	expiry := ents.Expiry.Display(question)

	var status string
	if optionType == models.OptionTypeCall {
		status = "out of the money"
		if currentPrice > strike {
			status = "in the money"
		}
	} else {
		status = "out of the money"
		if currentPrice < strike {
			status = "in the money"
		}
	}

	link := r.charts.ChartURL(symbol, "D")

	data := map[string]interface{}{
		"option_type":   optionType,
		"strike_price":  strike,
		"expiry_date":   expiry,
		"current_price": currentPrice,
		"status":        status,
	}

	if !profitIntentRe.MatchString(question) {
		// Plain position summary.
		var b strings.Builder
		fmt.Fprintf(&b, "Your %s $%g %s option expiring on %s:\n\n", symbol, strike, optionType, expiry)
		fmt.Fprintf(&b, "Current %s price: $%.2f\n", symbol, currentPrice)
		fmt.Fprintf(&b, "Strike price: $%.2f\n", strike)
		fmt.Fprintf(&b, "Status: Currently %s\n", status)
		if optionType == models.OptionTypeCall {
			fmt.Fprintf(&b, "For this call option to be in the money at expiration, %s needs to be above $%.2f.\n", symbol, strike)
		} else {
			fmt.Fprintf(&b, "For this put option to be in the money at expiration, %s needs to be below $%.2f.\n", symbol, strike)
		}
		fmt.Fprintf(&b, "\nView the latest %s chart: %s", symbol, link)

		return &models.Response{
			Type:    models.ResponseTypePersonalOption,
			Symbol:  symbol,
			Data:    data,
			Message: b.String(),
		}
	}

	// Profitability analysis, enriched with fundamentals when available.
	overview, overviewErr := r.market.GetOverview(ctx, symbol)

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis of your %s $%g %s option expiring on %s:\n\n", symbol, strike, optionType, expiry)
	fmt.Fprintf(&b, "Current %s price: $%.2f\n", symbol, currentPrice)
	fmt.Fprintf(&b, "Strike price: $%.2f\n", strike)
	fmt.Fprintf(&b, "Status: Currently %s\n\n", status)

	if optionType == models.OptionTypeCall {
		fmt.Fprintf(&b, "For your call option to be profitable at expiration, %s needs to be above $%.2f. ", symbol, strike)
		if status == "in the money" {
			fmt.Fprintf(&b, "It's currently $%.2f in the money.\n\n", currentPrice-strike)
		} else {
			fmt.Fprintf(&b, "It needs to rise at least $%.2f (or %.1f%%) from the current price.\n\n",
				strike-currentPrice, (strike-currentPrice)/currentPrice*100)
		}
	} else {
		fmt.Fprintf(&b, "For your put option to be profitable at expiration, %s needs to be below $%.2f. ", symbol, strike)
		if status == "in the money" {
			fmt.Fprintf(&b, "It's currently $%.2f in the money.\n\n", strike-currentPrice)
		} else {
			fmt.Fprintf(&b, "It needs to fall at least $%.2f (or %.1f%%) from the current price.\n\n",
				currentPrice-strike, (currentPrice-strike)/currentPrice*100)
		}
	}

	if overviewErr == nil {
		b.WriteString("Key factors that might influence this stock by your expiration date:\n")
		if pe, err := strconv.ParseFloat(overview.PERatio, 64); err == nil {
			if pe > 40 {
				fmt.Fprintf(&b, "- The stock has a high P/E ratio of %s, suggesting high growth expectations\n", overview.PERatio)
			} else if pe < 15 {
				fmt.Fprintf(&b, "- The stock has a relatively low P/E ratio of %s, which could indicate it's undervalued\n", overview.PERatio)
			}
		}
		fmt.Fprintf(&b, "- Earnings per share (EPS): $%s\n", orNA(overview.EPS))
		b.WriteString("- Recent news and upcoming earnings reports could significantly impact the stock price\n")
		b.WriteString("- Market volatility and broader economic factors will also play a role\n\n")
	}

	b.WriteString("Important considerations:\n")
	b.WriteString("- Options can lose value due to time decay (theta) even if the stock price doesn't change\n")
	b.WriteString("- Implied volatility changes can affect option pricing before expiration\n")
	fmt.Fprintf(&b, "- The break-even price at expiration is approximately $%.2f (excluding the premium you paid)\n\n", strike)
	fmt.Fprintf(&b, "View the latest %s chart on TradingView: %s\n\n", symbol, link)
	b.WriteString("Remember that stock movements are unpredictable, and this analysis is for educational purposes only.")

	return &models.Response{
		Type:    models.ResponseTypePersonalOption,
		Symbol:  symbol,
		Data:    data,
		Message: b.String(),
	}
}

// formatOptionProfitability answers generic "will a SYM option be
// profitable" questions. Missing details prompt for the specifics instead of
// guessing.
func (r *Router) formatOptionProfitability(ctx context.Context, symbol string, optionType models.OptionType, strike *float64, expiry string) *models.Response {
	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}
	currentPrice := quote.Price

	overview, overviewErr := r.market.GetOverview(ctx, symbol)
	companyName := symbol
	if overviewErr == nil && overview.Name != "" {
		companyName = overview.Name
	}

	if strike == nil {
		var b strings.Builder
		fmt.Fprintf(&b, "To properly assess the profitability of a %s %s option, I need more details:\n\n", symbol, optionType)
		b.WriteString("1. What is the strike price of the option?\n")
		b.WriteString("2. What is the expiration date?\n")
		b.WriteString("3. What was the premium paid for the option?\n\n")
		fmt.Fprintf(&b, "Currently, %s (%s) is trading at $%.2f.", companyName, symbol, currentPrice)

		return &models.Response{
			Type:    models.ResponseTypeOptionProfitability,
			Symbol:  symbol,
			Message: b.String(),
		}
	}

	strikePrice := *strike

	var inTheMoney bool
	var directionNeeded, aboveBelow string
	if optionType == models.OptionTypePut {
		inTheMoney = currentPrice < strikePrice
		directionNeeded = "stay below"
		if currentPrice > strikePrice {
			directionNeeded = "fall"
		}
		aboveBelow = "above"
		if inTheMoney {
			aboveBelow = "below"
		}
	} else {
		inTheMoney = currentPrice > strikePrice
		directionNeeded = "stay above"
		if currentPrice < strikePrice {
			directionNeeded = "rise"
		}
		aboveBelow = "below"
		if inTheMoney {
			aboveBelow = "above"
		}
	}

	distance := math.Abs(currentPrice - strikePrice)
	percentage := distance / strikePrice * 100

	var b strings.Builder
	fmt.Fprintf(&b, "Regarding the profitability of a %s $%g %s option", symbol, strikePrice, optionType)
	if expiry != "" {
		fmt.Fprintf(&b, " expiring %s", expiry)
	}
	b.WriteString(":\n\n")

	fmt.Fprintf(&b, "%s (%s) is currently trading at $%.2f, ", companyName, symbol, currentPrice)
	fmt.Fprintf(&b, "which is $%.2f (%.2f%%) %s your strike price of $%g.\n\n", distance, percentage, aboveBelow, strikePrice)
	if inTheMoney {
		b.WriteString("This option is currently in-the-money. ")
	} else {
		b.WriteString("This option is currently out-of-the-money. ")
	}
	fmt.Fprintf(&b, "For your option to be profitable at expiration, %s would need to %s the strike price of $%g by enough to offset the premium you paid.\n\n", symbol, directionNeeded, strikePrice)

	b.WriteString("Factors that affect option profitability:\n\n")
	b.WriteString("1. **Price Movement**: How much the underlying stock price moves (and in which direction)\n")
	b.WriteString("2. **Time Decay**: Options lose value as they approach expiration (theta decay)\n")
	b.WriteString("3. **Implied Volatility**: Changes in market volatility can significantly impact option prices\n")
	b.WriteString("4. **Premium Paid**: Your break-even point is determined by the premium you paid\n\n")
	b.WriteString("Since I don't have access to options pricing data or your entry price, I can't calculate the exact break-even point or probability of profit. For precise analysis, consider using your brokerage platform's tools or options calculators that incorporate current pricing data.")

	return &models.Response{
		Type:   models.ResponseTypeOptionProfitability,
		Symbol: symbol,
		Data: map[string]interface{}{
			"current_price": currentPrice,
			"strike_price":  strikePrice,
			"option_type":   optionType,
			"expiry":        expiry,
			"in_the_money":  inTheMoney,
		},
		Message: b.String(),
	}
}

// formatOptionRecommendations gives option-selection guidance scaled to the
// caller's budget. Without chain data the answer is educational rather than
// a specific contract.
func (r *Router) formatOptionRecommendations(ctx context.Context, symbol, budget string) *models.Response {
	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}
	currentPrice := quote.Price

	overview, overviewErr := r.market.GetOverview(ctx, symbol)
	companyName := symbol
	if overviewErr == nil && overview.Name != "" {
		companyName = overview.Name
	}

	budgetStr := ""
	if budget != "" {
		budgetStr = fmt.Sprintf(" with a budget of $%s", budget)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Regarding options recommendations for %s (%s)%s:\n\n", companyName, symbol, budgetStr)
	fmt.Fprintf(&b, "%s is currently trading at $%.2f.\n\n", symbol, currentPrice)

	b.WriteString("When selecting options, consider these key factors:\n\n")
	b.WriteString("1. **Strike Price Selection**:\n")
	fmt.Fprintf(&b, "   - At-the-money (ATM): Strike price near the current price (around $%.2f)\n", currentPrice)
	fmt.Fprintf(&b, "   - In-the-money (ITM): For calls, strikes below $%.2f; for puts, strikes above $%.2f\n", currentPrice, currentPrice)
	fmt.Fprintf(&b, "   - Out-of-the-money (OTM): For calls, strikes above $%.2f; for puts, strikes below $%.2f\n\n", currentPrice, currentPrice)
	b.WriteString("2. **Expiration Timeline**:\n")
	b.WriteString("   - Short-term (weekly/monthly): Higher risk, lower cost, faster time decay\n")
	b.WriteString("   - Medium-term (3-6 months): Balanced approach, moderates time decay\n")
	b.WriteString("   - LEAPS (>6 months): Lower risk, higher cost, more time for your thesis to play out\n\n")
	b.WriteString("3. **Strategy Selection Based on Market Outlook**:\n")
	b.WriteString("   - Bullish: Consider call options or bull call spreads\n")
	b.WriteString("   - Bearish: Consider put options or bear put spreads\n")
	b.WriteString("   - Neutral: Consider iron condors or butterfly spreads\n")
	b.WriteString("   - Volatile: Consider straddles or strangles\n\n")
	b.WriteString("4. **Risk Management**:\n")
	b.WriteString("   - Only allocate what you can afford to lose (typically 1-5% of portfolio per trade)\n")
	b.WriteString("   - Consider using spreads to limit maximum loss\n")
	b.WriteString("   - Have clear exit points for both profit taking and loss management\n\n")
	b.WriteString("Unfortunately, I can't provide specific strike prices or option contracts without current options chain data. For personalized recommendations, I suggest:\n\n")
	b.WriteString("1. Check your brokerage platform for current option chains with pricing\n")
	b.WriteString("2. Look for options with adequate liquidity (open interest >100, tight bid-ask spreads)\n")
	b.WriteString("3. Consider implied volatility (IV) - high IV makes options more expensive\n")
	b.WriteString("4. Calculate your break-even point (for calls: strike price + premium; for puts: strike price - premium)\n\n")
	b.WriteString("Remember that options trading involves significant risk and isn't suitable for all investors. Consider consulting with a financial advisor before making investment decisions.")

	return &models.Response{
		Type:   models.ResponseTypeOptionRecommendations,
		Symbol: symbol,
		Data: map[string]interface{}{
			"current_price": currentPrice,
			"budget":        budget,
		},
		Message: b.String(),
	}
}

// formatPrediction frames a price-target question with the distance to the
// target and a standard disclaimer. No forecast is attempted.
func (r *Router) formatPrediction(ctx context.Context, symbol, question string) *models.Response {
	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}
	currentPrice := quote.Price

	overview, overviewErr := r.market.GetOverview(ctx, symbol)
	companyName := symbol
	if overviewErr == nil && overview.Name != "" {
		companyName = overview.Name
	}

	link := fmt.Sprintf("https://www.tradingview.com/chart/?symbol=%s&studies=RSI@tv-basicstudies,MACD@tv-basicstudies,BB@tv-basicstudies", symbol)

	var targetPrice *float64
	timeFrame := ""
	if m := timeFrameRe.FindString(question); m != "" {
		timeFrame = m
	} else if m := relativeTimeRe.FindString(question); m != "" {
		timeFrame = m
	}

	var b strings.Builder
	if m := dollarAmountRe.FindStringSubmatch(question); m != nil {
		target, _ := strconv.ParseFloat(m[1], 64)
		targetPrice = &target
		priceChange := target - currentPrice
		percentChange := priceChange / currentPrice * 100

		if timeFrame != "" {
			fmt.Fprintf(&b, "You're asking if %s (%s) will reach $%.2f %s.\n\n", companyName, symbol, target, timeFrame)
		} else {
			fmt.Fprintf(&b, "You're asking if %s (%s) will reach $%.2f.\n\n", companyName, symbol, target)
		}

		direction := "decrease"
		if priceChange > 0 {
			direction = "increase"
		}
		fmt.Fprintf(&b, "Current price: $%g\n", currentPrice)
		fmt.Fprintf(&b, "Target price: $%.2f\n", target)
		fmt.Fprintf(&b, "Required change: $%.2f (%.2f%% %s)\n\n", math.Abs(priceChange), math.Abs(percentChange), direction)

		var volatility string
		switch abs := math.Abs(percentChange); {
		case abs < 5:
			volatility = "This represents a relatively small movement for most stocks."
		case abs < 20:
			volatility = "This represents a moderate movement that is certainly possible with the right catalysts."
		default:
			volatility = "This represents a significant movement that would typically require major news or events."
		}
		fmt.Fprintf(&b, "%s\n\n", volatility)
	} else {
		fmt.Fprintf(&b, "Regarding the future price of %s (%s):\n\n", companyName, symbol)
		fmt.Fprintf(&b, "Current price: $%g\n\n", currentPrice)
	}

	b.WriteString("Important Disclaimer: I cannot predict with certainty whether a stock will reach a specific price target. ")
	b.WriteString("Stock price movements are influenced by countless factors including company performance, market conditions, economic indicators, and unexpected events.\n\n")
	b.WriteString("For a more informed perspective, I recommend examining the following:\n")
	fmt.Fprintf(&b, "- View technical indicators on TradingView: %s\n", link)
	b.WriteString("- Review recent analyst price targets and recommendations\n")
	b.WriteString("- Examine upcoming company events (earnings reports, product launches)\n")
	b.WriteString("- Consider overall market trends and economic conditions\n")
	b.WriteString("- Consult with a financial advisor for personalized investment advice")

	data := map[string]interface{}{
		"current_price": currentPrice,
	}
	if targetPrice != nil {
		data["target_price"] = *targetPrice
	}
	if timeFrame != "" {
		data["time_frame"] = timeFrame
	}

	return &models.Response{
		Type:    models.ResponseTypePrediction,
		Symbol:  symbol,
		Data:    data,
		Message: b.String(),
	}
}

// formatOptionsOverview handles generic option questions where no pricing
// data is available; it frames whatever details were mentioned against the
// current price.
func (r *Router) formatOptionsOverview(ctx context.Context, symbol, question string) *models.Response {
	var optionType models.OptionType
	switch {
	case strings.Contains(question, "call"):
		optionType = models.OptionTypeCall
	case strings.Contains(question, "put"):
		optionType = models.OptionTypePut
	default:
		optionType = models.OptionTypeUnknown
	}

	var strike string
	if m := dollarAmountRe.FindStringSubmatch(question); m != nil {
		strike = m[1]
	}
	expiry := longExpiryRe.FindString(question)

	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}
	currentPrice := quote.Price

	var b strings.Builder
	fmt.Fprintf(&b, "Regarding %s options", symbol)
	if optionType != models.OptionTypeUnknown {
		fmt.Fprintf(&b, " (%ss)", optionType)
	}
	if strike != "" {
		fmt.Fprintf(&b, " with strike price $%s", strike)
	}
	if expiry != "" {
		fmt.Fprintf(&b, " expiring around %s", expiry)
	}
	b.WriteString(":\n\n")
	fmt.Fprintf(&b, "%s is currently trading at $%.2f.\n\n", symbol, currentPrice)

	if strike != "" && optionType != models.OptionTypeUnknown {
		strikeFloat, _ := strconv.ParseFloat(strike, 64)
		if optionType == models.OptionTypeCall {
			if currentPrice < strikeFloat {
				upside := (strikeFloat - currentPrice) / currentPrice * 100
				fmt.Fprintf(&b, "To reach the strike price of $%s, %s would need to increase by $%.2f (%.2f%%).\n\n",
					strike, symbol, strikeFloat-currentPrice, upside)
			} else {
				fmt.Fprintf(&b, "This option is currently in the money by $%.2f.\n\n", currentPrice-strikeFloat)
			}
		} else {
			if currentPrice > strikeFloat {
				downside := (currentPrice - strikeFloat) / currentPrice * 100
				fmt.Fprintf(&b, "To reach the strike price of $%s, %s would need to decrease by $%.2f (%.2f%%).\n\n",
					strike, symbol, currentPrice-strikeFloat, downside)
			} else {
				fmt.Fprintf(&b, "This option is currently in the money by $%.2f.\n\n", strikeFloat-currentPrice)
			}
		}
	}

	b.WriteString("I don't have direct access to options pricing data with the current API. For detailed options information, including prices, Greeks, open interest, and implied volatility, you might want to check your brokerage platform or a specialized options analysis tool.")

	return &models.Response{
		Type:    models.ResponseTypeOptions,
		Symbol:  symbol,
		Message: b.String(),
	}
}
