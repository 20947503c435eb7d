package ai

import "fmt"

// ReceiptPrompt is the fixed instruction for receipt images. The model must
// answer with a bare JSON object, or {} when the image is not a receipt.
const ReceiptPrompt = `Analyze this receipt image and extract the following information in JSON format:
- Total amount (just the number)
- Date (in ISO format YYYY-MM-DD)
- Description or items purchased (brief summary)
- Merchant/store name
- Suggested category (one of: housing, transportation, groceries, utilities, entertainment, food, shopping, healthcare, education, personal, travel, insurance, gifts, bills, other-expense)

Respond with ONLY this JSON object, no markdown and no code fences:
{
  "amount": number,
  "date": "YYYY-MM-DD",
  "description": "string",
  "merchantName": "string",
  "category": "string"
}

If it is not a receipt, return an empty JSON object {}.`

// PromptTemplate wraps free user text such as "Spent 500 on lunch".
const promptTemplate = `You are a financial assistant. Extract transaction details from this text: %q

Respond with ONLY this JSON object, no markdown and no code fences:
{
  "type": "INCOME" or "EXPENSE",
  "amount": number,
  "category": "string (one of: salary, freelance, investments, housing, transportation, groceries, utilities, entertainment, food, shopping, healthcare, travel, other-expense, other-income)",
  "description": "string (short, optional)",
  "date": "YYYY-MM-DD (optional, omit if not mentioned)"
}

If no transaction can be identified, return an empty JSON object {}.`

func TransactionPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
