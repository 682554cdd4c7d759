package interpreter

import "fmt"

func intentClassificationPrompt(command string) string {
	return fmt.Sprintf(`Classify this banking form command into one of the following intents:
- set_field: the user provides one or more field values
- focus_field: the user wants to move to or edit a specific field
- submit_form: the user wants to submit the transfer
- reset_form: the user wants to clear the form
- help: the user is asking what they can say
- unknown: intent cannot be determined

Command: "%s"
Only respond with the intent keyword.`, command)
}

func fieldExtractionPrompt(command string) string {
	return fmt.Sprintf(`Extract banking transfer details from this command. The form has these fields:
- recipientName (string)
- recipientAccount (string, numbers only)
- bankName (string)
- amount (number)
- currency (string: NGN, USD, EUR, GBP, JPY)
- reference (string, optional)

Return JSON with ONLY the fields mentioned. Example:
{"amount": "5000", "currency": "NGN"}

Command: "%s"`, command)
}

func focusFieldPrompt(command string) string {
	return fmt.Sprintf(`From the following command, identify the field being referred to:
Options: recipientName, recipientAccount, bankName, amount, currency, reference

Command: "%s"

Only return the field name.`, command)
}
