package question

// DefaultBank is the built-in Excel interview catalog used when no bank file
// is configured.
func DefaultBank() *Bank {
	b, err := NewBank(defaultQuestions)
	if err != nil {
		// The built-in catalog is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return b
}

var defaultQuestions = []Question{
	{
		ID:         "mcq-1",
		Text:       "Which function returns the number of cells in a range that contain numbers?",
		Type:       TypeMultipleChoice,
		Difficulty: "beginner",
		Category:   "basic_functions",
		Options: []Option{
			{Label: "A", Text: "COUNT"},
			{Label: "B", Text: "COUNTA"},
			{Label: "C", Text: "SUM"},
			{Label: "D", Text: "COUNTIF"},
		},
		CorrectChoice: "A",
	},
	{
		ID:         "mcq-2",
		Text:       "What does pressing F4 while editing a cell reference do?",
		Type:       TypeMultipleChoice,
		Difficulty: "beginner",
		Category:   "basic_functions",
		Options: []Option{
			{Label: "A", Text: "Deletes the reference"},
			{Label: "B", Text: "Cycles between relative and absolute referencing"},
			{Label: "C", Text: "Recalculates the workbook"},
			{Label: "D", Text: "Opens the formula auditing pane"},
		},
		CorrectChoice: "B",
	},
	{
		ID:         "mcq-3",
		Text:       "Which feature would you use to summarize 50,000 rows of sales data by region and month?",
		Type:       TypeMultipleChoice,
		Difficulty: "intermediate",
		Category:   "data_visualization",
		Options: []Option{
			{Label: "A", Text: "Conditional formatting"},
			{Label: "B", Text: "Data validation"},
			{Label: "C", Text: "Pivot table"},
			{Label: "D", Text: "Goal Seek"},
		},
		CorrectChoice: "C",
	},
	{
		ID:         "mcq-4",
		Text:       "VLOOKUP with the range_lookup argument omitted performs which kind of match?",
		Type:       TypeMultipleChoice,
		Difficulty: "intermediate",
		Category:   "lookup_functions",
		Options: []Option{
			{Label: "A", Text: "Exact match"},
			{Label: "B", Text: "Approximate match"},
			{Label: "C", Text: "Wildcard match"},
			{Label: "D", Text: "Case-sensitive match"},
		},
		CorrectChoice: "B",
	},
	{
		ID:         "mcq-5",
		Text:       "Which tool is designed for cleaning and reshaping external data before it lands in a worksheet?",
		Type:       TypeMultipleChoice,
		Difficulty: "advanced",
		Category:   "data_cleaning",
		Options: []Option{
			{Label: "A", Text: "Power Query"},
			{Label: "B", Text: "Scenario Manager"},
			{Label: "C", Text: "Watch Window"},
			{Label: "D", Text: "Solver"},
		},
		CorrectChoice: "A",
	},
	{
		ID:                 "open-1",
		Text:               "What is the difference between VLOOKUP and XLOOKUP? When would you use each?",
		Type:               TypeOpenEnded,
		Difficulty:         "intermediate",
		Category:           "lookup_functions",
		EvaluationCriteria: []string{"accuracy", "practical_examples", "limitations_understanding"},
	},
	{
		ID:                 "open-2",
		Text:               "How would you create a dynamic dashboard in Excel that updates automatically when new data is added?",
		Type:               TypeOpenEnded,
		Difficulty:         "advanced",
		Category:           "data_visualization",
		EvaluationCriteria: []string{"pivot_tables", "dynamic_ranges", "charts", "data_connections"},
	},
	{
		ID:                 "open-3",
		Text:               "Explain how you would clean and prepare a dataset with 10,000 rows containing duplicates, missing values, and inconsistent formatting.",
		Type:               TypeOpenEnded,
		Difficulty:         "intermediate",
		Category:           "data_cleaning",
		EvaluationCriteria: []string{"remove_duplicates", "handling_nulls", "text_functions", "efficiency"},
	},
	{
		ID:                 "open-4",
		Text:               "What are the most common Excel functions you use for financial analysis and why?",
		Type:               TypeOpenEnded,
		Difficulty:         "intermediate",
		Category:           "financial_analysis",
		EvaluationCriteria: []string{"function_knowledge", "practical_application", "financial_understanding"},
	},
	{
		ID:                 "open-5",
		Text:               "Describe a complex Excel problem you've solved and walk me through your approach.",
		Type:               TypeOpenEnded,
		Difficulty:         "advanced",
		Category:           "problem_solving",
		EvaluationCriteria: []string{"problem_complexity", "solution_approach", "technical_skills", "communication"},
	},
}
