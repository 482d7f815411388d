package quiz

// Answer is one selectable option of a question.
type Answer struct {
	Text  string
	Value int
}

// Question is an immutable prompt with exactly four answers.
type Question struct {
	ID      int
	Prompt  string
	Answers []Answer
}

// DefaultBank returns the Signal Creator question set in canonical order.
// Callers get a fresh copy and may reorder it freely.
func DefaultBank() []Question {
	bank := make([]Question, len(signalCreatorQuestions))
	copy(bank, signalCreatorQuestions)
	return bank
}

var signalCreatorQuestions = []Question{
	{
		ID:     1,
		Prompt: "What's your main reason for creating content?",
		Answers: []Answer{
			{"To get likes, clicks, and followers", 1},
			{"To grow quickly, even if it means using trends", 2},
			{"To share lessons from my experiences", 3},
			{"To help my former self and give value freely", 4},
		},
	},
	{
		ID:     2,
		Prompt: "How do you balance volume and quality?",
		Answers: []Answer{
			{"I post as much as possible, daily if needed", 1},
			{"I follow algorithms and trending formats", 2},
			{"I prefer fewer posts but with deeper insights", 3},
			{"I aim for timeless content that compounds over time", 4},
		},
	},
	{
		ID:     3,
		Prompt: "When writing, what do you optimise for?",
		Answers: []Answer{
			{"Engagement (likes, shares, virality)", 1},
			{"Emotional hooks to get attention", 2},
			{"Resonance with a specific group of people", 3},
			{"Long-term trust and credibility", 4},
		},
	},
	{
		ID:     4,
		Prompt: "How do you view algorithms?",
		Answers: []Answer{
			{"They control everything, I must please them", 1},
			{`I chase hacks to "beat" the algo`, 2},
			{"I respect them, but I don't obsess", 3},
			{"I build an algo-resistant body of work", 4},
		},
	},
	{
		ID:     5,
		Prompt: "Who do you speak to in your content?",
		Answers: []Answer{
			{"Everyone who might listen", 1},
			{"My current peers or trending audience", 2},
			{"My community and niche", 3},
			{"My former self (someone walking the path I did)", 4},
		},
	},
	{
		ID:     6,
		Prompt: "How do you feel about AI-generated content?",
		Answers: []Answer{
			{"It's perfect, I use it to churn as much as possible", 1},
			{"Great for quick filler content", 2},
			{"Helpful tool, but I add my voice and context", 3},
			{"AI can't replace unique lived experience and insights", 4},
		},
	},
	{
		ID:     7,
		Prompt: "What's your view on monetizing content?",
		Answers: []Answer{
			{"Grab short-term cash grabs, whatever works now", 1},
			{"Monetise fast before attention fades", 2},
			{"Build products/services around trust", 3},
			{"Focus on long-term wealth through reputation", 4},
		},
	},
	{
		ID:     8,
		Prompt: "How do you deal with burnout?",
		Answers: []Answer{
			{"I burn out often chasing trends", 1},
			{"I push through even if I don't enjoy it", 2},
			{"I rest and recalibrate", 3},
			{"I avoid burnout by creating what resonates with me", 4},
		},
	},
	{
		ID:     9,
		Prompt: "How do you decide what's worth your time?",
		Answers: []Answer{
			{"Whatever looks like the fastest win", 1},
			{"Whatever gets attention right now", 2},
			{"I curate based on ROI and past lessons", 3},
			{"I filter noise to find long-term signal", 4},
		},
	},
	{
		ID:     10,
		Prompt: "How do you measure success?",
		Answers: []Answer{
			{"Virality and follower counts", 1},
			{"Growth rate week by week", 2},
			{"Trust and relationships built", 3},
			{"Proof of work, reputation, and wealth compounding", 4},
		},
	},
}
