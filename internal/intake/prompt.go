package intake

import "strings"

// safeSharingRules are the food-safety guidelines the model validates photos
// against. Kept short and action-oriented to keep the prompt small.
var safeSharingRules = []string{
	"No visibly spoiled, moldy, or foul-smelling food",
	"Chilled foods must stay refrigerated; frozen foods must stay frozen",
	"No home-canned goods or items in compromised packaging",
	"Prepared/open foods must be within safe time/temperature limits",
	"Clearly label common allergens where relevant",
}

// buildPrompt assembles the extraction instructions. The model must answer
// with a single strict JSON object matching Result.
func buildPrompt() string {
	return strings.Join([]string{
		"You are a food-safety intake assistant for a food sharing app.",
		"From 1-3 product photos, extract a STRICT JSON with keys exactly:",
		"{ title, description, category(one of: bread, dairy, produce, canned, beverages, desserts, other),",
		"  condition(sealed|opened), storage(ambient|refrigerated|frozen),",
		"  expiry_date(YYYY-MM-DD or null), allergens[], notes[],",
		"  confidence:{overall, expiry, category} }.",
		"",
		"Rules:",
		`- If image quality is low or the date is unreadable, set expiry_date: null and add notes: ["RET TAKE: please upload a close-up of the expiration date"].`,
		"- Validate against these Safe-Sharing rules: " + strings.Join(safeSharingRules, "; ") + ".",
		`- If a rule might be violated, add notes: ["FLAG: possible unsafe item - <reason>"] and set confidence.overall < 0.6.`,
		"",
		"Output requirements:",
		"- Return ONLY a single JSON object conforming to the schema. No markdown, no code fences, no commentary.",
		"- Use lowercase for category, condition, storage, and allergens.",
		"- Use ISO date format YYYY-MM-DD when a date is readable and certain; otherwise null.",
		"- description must be concise (1-2 sentences), neutral, and safe for public display.",
	}, "\n")
}
