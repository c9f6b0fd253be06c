package notifier

import (
	"fmt"
	"html"
	"strings"

	"LifeMarket/internal/calculator"
	"LifeMarket/internal/model"
)

var sentimentIcon = map[model.Sentiment]string{
	model.SentimentBullish: "🟢",
	model.SentimentBearish: "🔴",
	model.SentimentNeutral: "⚪",
}

// FormatReport formats a session report into a Telegram message. prev is the
// last recorded snapshot of the same session, or nil.
func FormatReport(rep *model.MarketReport, prev *model.Snapshot) string {
	var b strings.Builder
	sum := rep.Market.Summary
	an := rep.Analysis

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(rep.Session.Name), rep.GeneratedAt.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("Open: %.2f → Close: %.2f (ROE %+.2f%%)\n", sum.Open, sum.Close, sum.ROE))
	b.WriteString(fmt.Sprintf("Range: %.2f ~ %.2f", sum.Low, sum.High))
	if pos, err := calculator.RangePosition(sum.Close, sum.High, sum.Low); err == nil {
		b.WriteString(fmt.Sprintf(" (position %.0f%%)", pos*100))
	}
	b.WriteString(fmt.Sprintf("\nVolume: %.0f | %d %s candles\n", sum.Volume, len(rep.Market.History), rep.Market.PeriodName))
	if rsi, err := calculator.CalculateRSI(rep.Market.History, calculator.DefaultRSIPeriod); err == nil {
		b.WriteString(fmt.Sprintf("RSI(%d): %.1f\n", calculator.DefaultRSIPeriod, rsi))
	}
	if sum.IsLiquidationRisk {
		b.WriteString("⚠️ Liquidation risk: score fell to 15 or below\n")
	}

	b.WriteString(fmt.Sprintf("\n%s <b>%s</b> (score %+d, confidence %.0f%%)\n",
		sentimentIcon[an.Sentiment], an.Sentiment, an.Score, an.Confidence))
	b.WriteString(fmt.Sprintf("Target: %.2f\n", an.TargetPrice))
	for _, s := range an.Signals {
		b.WriteString(fmt.Sprintf("  • %s\n", html.EscapeString(s)))
	}
	b.WriteString(fmt.Sprintf("\n%s\n", html.EscapeString(an.Description)))

	if prev != nil && prev.Analysis.Sentiment != an.Sentiment {
		b.WriteString(fmt.Sprintf("\n🔁 Sentiment changed: %s → %s\n", prev.Analysis.Sentiment, an.Sentiment))
	}
	return b.String()
}

// FormatSessionList formats the saved sessions for display.
func FormatSessionList(sessions []model.Session) string {
	if len(sessions) == 0 {
		return "No saved sessions."
	}
	var b strings.Builder
	b.WriteString("📦 <b>Sessions</b>\n\n")
	for _, s := range sessions {
		b.WriteString(fmt.Sprintf("• <code>%s</code> %s (%d events, start %.0f)\n",
			s.ID, html.EscapeString(s.Name), len(s.Events), s.InitialScore))
	}
	return b.String()
}

// FormatHelp lists the available chat commands.
func FormatHelp() string {
	return "Available commands:\n• /sessions\n• /report &lt;session id&gt; [1H|4H|1D]"
}
