package common

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default" when absent. Accounts map to stored OAuth token
// slots, so the name is free-form but must match what `slotwise auth` used.
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
