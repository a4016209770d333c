package patterns

// =============================================================================
// PATTERN DEFINITIONS BY CATEGORY
// All patterns are registered here and compiled once at package init.
// =============================================================================

// --- URL PATH / QUERY PATTERNS ---
// Matched against the full URL string. Order is significant: reasons are
// emitted in registration order.
func (r *Registry) registerURLPathPatterns() {
	cat := CategoryURLPath

	r.register("url_auth_terms", `login|signin|account|password|verify|secure|auth`, cat, 10,
		"Contains sensitive authentication terms in URL")
	r.register("url_urgent_terms", `confirm|update|alert|warning`, cat, 10,
		"Contains urgent action terms in URL")
	r.register("url_server_script", `\.php$|\.aspx$|\.jsp$`, cat, 10,
		"Uses executable script in URL")
	r.register("url_binary_file", `\.(exe|zip|rar|dll|dat)$`, cat, 10,
		"Links to executable or data file")
	r.register("url_unusual_chars", `[^\w\-\./:]`, cat, 10,
		"Contains unusual characters in URL")
}

// --- SENSITIVE INFORMATION REQUEST PATTERNS ---
// Matched against the raw message body (case-insensitive where the phrasing
// varies). Each hit bumps the sensitiveInfo feature.
func (r *Registry) registerSensitiveRequestPatterns() {
	cat := CategorySensitiveRequest

	r.register("req_national_id", `(?i)social security|ssn|national id|passport`, cat, 20,
		"Requests for SSN/national ID")
	r.register("req_card_data", `(?i)credit card|card number|cvv|expiration date`, cat, 20,
		"Requests for credit card information")
	r.register("req_credentials", `(?i)username.*?password`, cat, 20,
		"Requests for login credentials")
	r.register("req_banking", `(?i)bank.{1,20}(account|routing)`, cat, 20,
		"Requests for banking information")
	r.register("req_click_bait", `(?i)click.{1,30}(link|here|confirm)`, cat, 20,
		"Encourages clicking on links")
	r.register("req_transactions", `(?i)withdraw|deposit|transfer|credited|debited`, cat, 20,
		"References to financial transactions")
}
