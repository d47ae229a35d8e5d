package intent

import "github.com/songzhibin97/tokenlens/internal/models"

// intentKeywords maps each intent to the keyword set scored against the
// request text. One point per substring hit; ties are decided by the
// position in models.AllIntents, which the classifier iterates in order.
var intentKeywords = map[models.AnalysisIntent][]string{
	models.IntentHoneypotDetection: {
		"honeypot", "honey pot", "can't sell", "cant sell", "cannot sell",
		"unable to sell", "sell blocked", "sellable",
	},
	models.IntentRugPullDetection: {
		"rug", "rugpull", "rug pull", "scam", "rugged", "exit scam", "fraud",
	},
	models.IntentLPLockCheck: {
		"lp lock", "liquidity lock", "locked", "lock", "unlock", "lp",
		"liquidity pool",
	},
	models.IntentHolderAnalysis: {
		"holder", "holders", "distribution", "top 10", "concentration",
		"supply held",
	},
	models.IntentWhaleTracking: {
		"whale", "whales", "large wallet", "big wallet", "smart money",
	},
	models.IntentVolumeSpikeDetection: {
		"volume spike", "volume surge", "spike", "pump", "volume",
	},
	models.IntentNewTokenDetection: {
		"new token", "just launched", "launch", "fresh", "newly",
	},
	models.IntentTrendingTokens: {
		"trending", "trend", "hot tokens", "popular", "top tokens",
	},
	models.IntentTokenMetadata: {
		"metadata", "decimals", "symbol", "contract info", "token info",
	},
	models.IntentRiskScoring: {
		"risk", "risk score", "safety", "safe", "score", "rating",
	},
	models.IntentEducational: {
		"what is", "how does", "explain", "meaning", "learn", "difference between",
	},
	models.IntentTokenAnalysis: {
		"analyze", "analysis", "check", "scan", "look at", "review",
	},
}

// comboBoost is a confidence bonus applied when every term group in a
// combination has at least one hit.
type comboBoost struct {
	intent models.AnalysisIntent
	groups [][]string
	boost  float64
}

// comboBoosts are the special keyword combinations from the classification
// policy. They adjust confidence for the named intent on top of plain
// keyword counting.
var comboBoosts = []comboBoost{
	{
		intent: models.IntentLPLockCheck,
		groups: [][]string{{"lock", "locked", "unlock"}, {"liquidity", "lp", "pool"}},
		boost:  2,
	},
	{
		intent: models.IntentRugPullDetection,
		groups: [][]string{{"rug", "scam", "fraud"}},
		boost:  2,
	},
	{
		intent: models.IntentHolderAnalysis,
		groups: [][]string{{"holder", "whale"}},
		boost:  1.5,
	},
}

// suggestedTools maps each intent to the source priority hint consumed by
// the router configuration. Free sources lead; quota-limited sources trail.
var suggestedTools = map[models.AnalysisIntent][]string{
	models.IntentTokenAnalysis:        {"dexscreener", "geckoterminal", "birdeye"},
	models.IntentLPLockCheck:          {"dexscreener", "geckoterminal"},
	models.IntentHolderAnalysis:       {"chainrpc", "birdeye"},
	models.IntentRugPullDetection:     {"dexscreener", "geckoterminal", "goplus"},
	models.IntentHoneypotDetection:    {"goplus", "dexscreener"},
	models.IntentNewTokenDetection:    {"dexscreener", "geckoterminal"},
	models.IntentVolumeSpikeDetection: {"dexscreener", "cexmarket", "birdeye"},
	models.IntentWhaleTracking:        {"chainrpc", "birdeye"},
	models.IntentTrendingTokens:       {},
	models.IntentEducational:          {},
	models.IntentRiskScoring:          {"dexscreener", "geckoterminal", "chainrpc", "birdeye"},
	models.IntentTokenMetadata:        {"tokenlist", "goplus", "dexscreener", "chainrpc"},
}
