package catalog

// Default returns the built-in practice set: math, reading and vocab, each
// with an intro lesson, ten quizzes and a summary lesson.
func Default() *Catalog {
	return MustNew(defaultItems())
}

func answer(i int) *int { return &i }

func quiz(subject, id, topic, prompt string, choices []string, ans int, explanation string) Item {
	return Item{
		ID:          id,
		Type:        TypeQuiz,
		Subject:     subject,
		Topic:       topic,
		Prompt:      prompt,
		Choices:     choices,
		AnswerIndex: answer(ans),
		Explanation: explanation,
	}
}

func lesson(subject, id, title, caption string) Item {
	return Item{ID: id, Type: TypeLesson, Subject: subject, Title: title, Caption: caption}
}

func withPassage(it Item, passage string) Item {
	it.Passage = passage
	return it
}

const (
	parksPassage = "As urban parks have grown in popularity, managers face a paradox: success leads to strain. " +
		"Crowds compact soil, trample native plants, and encourage litter, but these spaces also build community " +
		"and improve public health. The question is not whether parks should be popular, they should, but how to " +
		"guide use so that popularity does not undercut the very benefits that draw people in."
)

func defaultItems() []Item {
	return []Item{
		// Math
		lesson("math", "math-intro", "Quick Tip: Predict the Step",
			"Before you touch numbers, name the next move: isolate x? convert percent? set up a proportion? Predicting reduces careless errors."),
		quiz("math", "m1-linear-distribute", "Linear equations", "Solve for x: 3(x + 2) - 2x = 11",
			[]string{"x = 5", "x = 1", "x = -1", "x = 7"}, 0, "3(x+2)-2x = x+6; x+6 = 11, so x = 5."),
		quiz("math", "m2-percent-increase", "Percent", "A price increases from $80 to $92. What is the percent increase?",
			[]string{"12%", "15%", "8%", "10%"}, 1, "Increase = 12; 12/80 = 0.15 = 15%."),
		quiz("math", "m3-systems-sub", "Systems of equations", "Solve the system: y = 2x + 3 and x + y = 18",
			[]string{"x = 5, y = 13", "x = 6, y = 12", "x = 7, y = 11", "x = 8, y = 10"}, 0, "x + (2x+3) = 18, 3x = 15, x = 5; y = 13."),
		quiz("math", "m4-exponents-product", "Exponents", "Simplify: (2x^3)(3x^2)",
			[]string{"6x^5", "5x^6", "6x^6", "5x^5"}, 0, "Multiply coefficients (6) and add exponents (x^(3+2))."),
		quiz("math", "m5-functions-eval", "Functions", "If f(x) = x^2 - 4x + 1, what is f(-2)?",
			[]string{"13", "9", "1", "5"}, 0, "f(-2) = 4 + 8 + 1 = 13."),
		quiz("math", "m6-slope-meaning", "Slope", "In y = mx + b, what does m represent?",
			[]string{"The y-intercept", "The slope", "An average of x and y", "A constant with no meaning"}, 1, "m is the rate of change (slope)."),
		quiz("math", "m7-rate", "Rate problems", "A car travels 180 miles in 3 hours at a constant speed. What is the speed?",
			[]string{"50 mph", "55 mph", "60 mph", "65 mph"}, 2, "Distance/time = 60 mph."),
		quiz("math", "m8-quadratic-factor", "Quadratics", "Solve: x^2 - 5x + 6 = 0",
			[]string{"x = -2 or -3", "x = 2 or 3", "x = 1 or 6", "x = -1 or -6"}, 1, "(x-2)(x-3) = 0, so x = 2 or x = 3."),
		quiz("math", "m9-proportion", "Proportions", "If 4 pencils cost $3, how much do 10 pencils cost (same rate)?",
			[]string{"$6.50", "$7.50", "$8.00", "$7.25"}, 1, "Unit cost = 3/4; 10 x 0.75 = 7.50."),
		quiz("math", "m10-linear-word", "Linear equations",
			"A gym charges a joining fee of $25 plus $15 per month. Which equation gives total cost C after m months?",
			[]string{"C = 25m + 15", "C = 15m + 25", "C = 15(m - 25)", "C = 25(m - 15)"}, 1, "Fixed fee 25, then 15 each month: C = 15m + 25."),
		lesson("math", "math-summary", "Summary: Math",
			"Nice run! Ready for another track or a tougher set? Use the tutor for hints; keep building streaks."),

		// Reading
		lesson("reading", "reading-intro", "Reading Tip: Predict, Then Match",
			"Before choices, say the answer in your own words. Then pick the choice that best matches that idea, with no extra claims."),
		withPassage(quiz("reading", "r1-main-idea", "Main idea", "Which choice best states the main purpose of the paragraph?",
			[]string{
				"To argue that parks should limit access to reduce damage",
				"To explain a tension between park popularity and park health",
				"To show that parks offer no health benefits",
				"To describe how to measure soil compaction",
			}, 1, "It introduces a tension and frames a management question, not a ban."), parksPassage),
		withPassage(quiz("reading", "r2-evidence", "Evidence", "Which line best supports the idea that popularity causes strain?",
			[]string{
				"\"build community and improve public health\"",
				"\"success leads to strain\"",
				"\"The question is not whether parks should be popular\"",
				"\"but how to guide use\"",
			}, 1, "The phrase directly links popularity (success) to strain."), parksPassage),
		withPassage(quiz("reading", "r3-inference-museum", "Inference", "What can be reasonably inferred about the directors' priorities?",
			[]string{
				"They prefer to close rather than repair buildings.",
				"They must balance immediate needs with preservation goals.",
				"They spend most funds on marketing events.",
				"They believe collections should be frequently replaced.",
			}, 1, "The short-term vs. long-term contrast implies balancing priorities."),
			"Many small museums rely on volunteer labor and irregular donations. When a sudden expense arises, a leaky roof "+
				"or a failed climate-control unit, directors must choose between short-term patches and long-term fixes. Those "+
				"choices, while unglamorous, determine whether collections are merely stored or truly preserved."),
		withPassage(quiz("reading", "r4-vocab-tentative", "Vocab in context", "As used in the passage, \"tentative\" most nearly means:",
			[]string{"insignificant", "uncertain", "accidental", "obvious"}, 1, "Provisional/uncertain pending replication."),
			"When the researcher called the result \"tentative,\" she did not mean it was unimportant; rather, the sample was "+
				"small, and replication was needed before any firm claims."),
		withPassage(quiz("reading", "r5-function-gardens", "Function", "The second sentence primarily serves to:",
			[]string{
				"provide an example that confirms the critics' view",
				"present a practical counterpoint to an assumption",
				"argue that nostalgia is harmful",
				"define the word 'nostalgia'",
			}, 1, "It counters critics by emphasizing practicality."),
			"Critics sometimes frame community gardens as nostalgic throwbacks. Yet the gardeners themselves tend to be "+
				"pragmatic; they want fresh produce, not sepia-toned memories. The supposed nostalgia is, at most, a bonus."),
		withPassage(quiz("reading", "r6-detail-crows", "Detail", "According to the passage, what is 'practice caching' hypothesized to develop?",
			[]string{"Vocal mimicry", "Spatial memory and dexterity", "Migration timing", "Mate selection"}, 1,
			"The last sentence states the hypothesized function."),
			"In field studies of crows, researchers noticed juveniles engaging in 'practice caching': hiding pebbles in the "+
				"soil and later retrieving them. While the behavior does not store food, it may build spatial memory and "+
				"dexterity used in real caching."),
		withPassage(quiz("reading", "r7-quant-libraries", "Quantitative", "Which statement is best supported by the data?",
			[]string{
				"Visits fell every year.",
				"Year 3 marked a rebound after a dip.",
				"Year 2 had the highest visits.",
				"Year 4 saw fewer visits than Year 1.",
			}, 1, "There is a dip (Y2) and rebound (Y3 to Y4)."),
			"A study tracked library visits over 4 years: Year 1: 1.2M; Year 2: 1.1M; Year 3: 1.4M; Year 4: 1.6M."),
		withPassage(quiz("reading", "r8-purpose-device", "Purpose",
			"The author's primary purpose is to show that the device's adoption is driven mainly by:",
			[]string{"advertising", "reliability", "novelty", "low cost"}, 1, "Reliability is emphasized as the driver of adoption."),
			"While the device's early reviews focused on novelty, subsequent studies emphasized its reliability under field "+
				"conditions, an unglamorous trait that nonetheless drives adoption."),
		withPassage(quiz("reading", "r9-logic-seasonal", "Logic", "Which choice best resolves the apparent inconsistency?",
			[]string{
				"The chef admits the menu isn't seasonal after all.",
				"Greenhouse-grown regional tomatoes can be considered seasonal.",
				"Tomatoes are always in season everywhere.",
				"The menu avoids tomatoes entirely.",
			}, 1, "Regional greenhouse supply aligns with the seasonal claim."),
			"The chef insists the menu is strictly seasonal, yet tomatoes, out of season locally, appear in several dishes. "+
				"She responds that those tomatoes are greenhouse-grown within the region."),
		withPassage(quiz("reading", "r10-tone-pragmatic", "Tone", "The tone toward the conclusion is best described as:",
			[]string{"reverent", "triumphant", "pragmatic", "sarcastic"}, 2, "Language implies pragmatic, modest steps."),
			"The essay's conclusion does not herald a revolution; it offers a modest checklist of next steps, the kind of "+
				"practical measures that rarely make headlines."),
		lesson("reading", "reading-summary", "Summary: Reading",
			"Great work. Want another pass or a different subject? Use the tutor to practice evidence and inference one step at a time."),

		// Vocab
		lesson("vocab", "vocab-intro", "Vocab Tip: Check Tone + Fit",
			"Substitute the answer in the sentence. Does tone and meaning fit perfectly? If not, eliminate it."),
		quiz("vocab", "v1-tentative", "Context", "The scientist's explanation was ___: careful, provisional, and open to revision.",
			[]string{"dogmatic", "tentative", "grandiose", "superfluous"}, 1, "'Tentative' matches careful/provisional."),
		quiz("vocab", "v2-perfunctory", "Connotation", "The CEO's praise sounded ___, more like a rehearsed speech than genuine appreciation.",
			[]string{"candid", "effusive", "perfunctory", "laudatory"}, 2, "'Perfunctory' = minimal effort; insincere tone."),
		quiz("vocab", "v3-scrupulous", "Precision", "The historian was admired for her ___ use of sources, never stretching evidence beyond its limits.",
			[]string{"scrupulous", "capricious", "florid", "glib"}, 0, "'Scrupulous' = careful and exact."),
		quiz("vocab", "v4-trenchant", "Tone", "Although he seemed shy, his remarks were surprisingly ___, cutting straight to the issue.",
			[]string{"diffuse", "trenchant", "vacuous", "wistful"}, 1, "'Trenchant' = incisive."),
		quiz("vocab", "v5-measured", "Nuance", "Her review was ___, pointing out flaws without seeming harsh.",
			[]string{"scathing", "measured", "bombastic", "elliptical"}, 1, "Balanced, restrained tone."),
		quiz("vocab", "v6-derivative", "Context", "The plan was ambitious but hardly ___; it followed a proven template.",
			[]string{"novel", "derivative", "untenable", "inchoate"}, 1, "'Derivative' = based on something else."),
		quiz("vocab", "v7-anomalous", "Word choice", "Because the measurements were ___, the team repeated the trial to reduce error.",
			[]string{"redundant", "anomalous", "meticulous", "spurious"}, 1, "Irregular results call for repeat trials."),
		quiz("vocab", "v8-lucid", "Register", "The tone of the memo was refreshingly ___, avoiding jargon in favor of plain speech.",
			[]string{"arcane", "lucid", "esoteric", "turgid"}, 1, "'Lucid' = clear."),
		quiz("vocab", "v9-indifferent", "Opposites", "Once celebrated as a prodigy, the violinist now faced a more ___ audience.",
			[]string{"rapturous", "indifferent", "credulous", "ardent"}, 1, "Indifferent contrasts with earlier praise."),
		quiz("vocab", "v10-extraneous", "Precision", "The editor removed any ___ phrasing to keep the article tight and focused.",
			[]string{"ostentatious", "pellucid", "extraneous", "sonorous"}, 2, "'Extraneous' = unnecessary."),
		lesson("vocab", "vocab-summary", "Summary: Vocab",
			"Strong finish. Keep testing tone and fit by substitution; your accuracy will climb fast."),
	}
}
