package llm

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const storyPromptTemplate = `You are a financial storyteller for an app called 'The Living Ledger', which has a Minecraft theme. Your task is to take a raw bank transaction and convert it into a creative, short story statement. First, you must identify the category of the transaction. Then, map the currency to 'diamonds' and the purchase to a relevant Minecraft item or event.
--- EXAMPLES ---
Input: ` + "`" + `Description: "UPI/AMAZON_IN/", Type: debit, Amount: 1200` + "`" + ` -> Output: Traded 1200 diamonds with a wandering villager for rare crafting supplies.
Input: ` + "`" + `Description: "SALARY CREDIT SEPTEMBER", Type: credit, Amount: 75000` + "`" + ` -> Output: A massive vein of 75000 diamonds was discovered in the great mine!
Input: ` + "`" + `Description: "Zomato", Type: debit, Amount: 350` + "`" + ` -> Output: Spent 350 diamonds to craft a few enchanted golden apples for a quick feast.
--- YOUR TASK ---
Input: ` + "`" + `Description: "%s", Type: %s, Amount: %s` + "`" + ` -> Output:`

const insightPromptTemplate = `You are a mystical Oracle in a Minecraft-themed financial app called 'The Living Ledger'. Based on the following summary of an adventurer's recent financial activity, provide 2-3 short, encouraging, and thematic insights. Speak wisely and concisely.
--- ADVENTURER'S SUMMARY ---
%s
--- YOUR INSIGHTS (in JSON format: {"insights": ["Insight 1", "Insight 2"]}) ---`

// StoryPrompt builds the narrative-generation prompt for one transaction.
func StoryPrompt(description, txType string, amount decimal.Decimal) string {
	return fmt.Sprintf(storyPromptTemplate, description, txType, amount.String())
}

// InsightPrompt wraps an activity summary in the oracle-insight request.
func InsightPrompt(summary string) string {
	return fmt.Sprintf(insightPromptTemplate, summary)
}
