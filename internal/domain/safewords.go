package domain

// alwaysSafeWords lists function words every learner meets from day one:
// pronouns, particles, the copula, basic connectors, question words,
// common adverbs, negation, numerals, and measure words. These bypass
// curriculum position checks entirely, independent of any loaded snapshot.
var alwaysSafeWords = map[string]struct{}{
	// Pronouns
	"我": {}, "你": {}, "他": {}, "她": {}, "它": {},
	"我们": {}, "你们": {}, "他们": {},
	// Particles
	"的": {}, "了": {}, "吗": {}, "呢": {}, "吧": {}, "啊": {}, "哦": {}, "嗯": {},
	// Copula, existence, basic connectors
	"是": {}, "有": {}, "在": {}, "和": {}, "与": {}, "或": {}, "但": {}, "而": {},
	// Demonstratives and question words
	"这": {}, "那": {}, "什么": {}, "怎么": {}, "为什么": {}, "哪": {}, "哪里": {},
	// Adverbs
	"很": {}, "太": {}, "最": {}, "都": {}, "也": {}, "还": {}, "就": {}, "才": {},
	// Negation, requests, modals
	"不": {}, "没": {}, "别": {}, "请": {}, "要": {}, "会": {}, "能": {}, "可以": {},
	// Numerals
	"一": {}, "二": {}, "三": {}, "四": {}, "五": {},
	"六": {}, "七": {}, "八": {}, "九": {}, "十": {},
	// Measure words and localizers
	"个": {}, "些": {}, "点": {}, "下": {}, "上": {}, "里": {}, "外": {},
}

// IsAlwaysSafe reports whether word belongs to the fixed function-word set
// that is safe at every curriculum position.
func IsAlwaysSafe(word string) bool {
	_, ok := alwaysSafeWords[word]
	return ok
}

// AlwaysSafeCount returns the size of the fixed function-word set.
func AlwaysSafeCount() int {
	return len(alwaysSafeWords)
}
