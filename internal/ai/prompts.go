package ai

// receiptReviewPrompt asks the vision model to compare a receipt image or
// PDF against the values the cardholder entered on the purchase request.
const receiptReviewPrompt = `
You are reviewing a receipt attached to a corporate P-Card purchase request.

### EXPECTED VALUES (entered by the cardholder)
- Vendor: %s
- Total amount: %.2f
- Purchase date: %s

### TASK
Read the attached receipt and decide whether it matches the expected values.
Minor formatting differences (vendor abbreviations, currency symbols, date
formats) are still a match. A different vendor, an amount differing by more
than rounding, or a date more than 3 days off is a mismatch.

### OUTPUT FORMAT
You must return a JSON object with the following structure and nothing else:
{
  "vendorMatch": true | false,
  "amountMatch": true | false,
  "dateMatch": true | false,
  "overallMatch": true | false,
  "confidence": 0.0 to 1.0,
  "notes": "Short human readable explanation"
}
`
