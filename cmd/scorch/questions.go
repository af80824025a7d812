package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagShowAnswers bool

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the chance-card question bank",
	Long: `Load and validate the question bank (the embedded one, or --questions)
and print every question.

Examples:
  scorch questions
  scorch questions --answers
  scorch questions --questions ./my-bank.yaml`,
	Run: runQuestions,
}

func init() {
	questionsCmd.Flags().BoolVar(&flagShowAnswers, "answers", false, "Mark the correct choice and show the fact")
}

func runQuestions(_ *cobra.Command, _ []string) {
	bank, err := loadQuestions(1)
	if err != nil {
		fail("%v", err)
	}

	source := "embedded bank"
	if flagQuestions != "" {
		source = flagQuestions
	}
	fmt.Printf("%d questions (%s)\n", bank.Len(), source)

	for i, q := range bank.Questions() {
		fmt.Println()
		fmt.Printf("%2d. %s\n", i+1, q.Prompt)
		for j, choice := range q.Choices {
			mark := " "
			if flagShowAnswers && q.IsCorrect(j) {
				mark = "*"
			}
			fmt.Printf("   %s %d) %s\n", mark, j+1, choice)
		}
		if flagShowAnswers && q.Fact != "" {
			fmt.Printf("     %s\n", q.Fact)
		}
	}
}
