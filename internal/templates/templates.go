package templates

// DefaultRole is used when the requested role has no template of its own.
const DefaultRole = "Software Engineer"

// roleQuestions maps a role to its fixed, ordered interview prompts.
// Matching is exact and case-sensitive.
var roleQuestions = map[string][]string{
	"Software Engineer": {
		"Tell me about yourself and your background in software development.",
		"Describe a challenging technical problem you solved and your approach.",
		"How do you stay updated with the latest technologies and best practices?",
		"Explain your experience with version control and collaborative development.",
		"Where do you see yourself in the next 3-5 years in your career?",
	},
	"Product Manager": {
		"Tell me about your experience in product management.",
		"How do you prioritize features when building a product roadmap?",
		"Describe a time when you had to make a difficult product decision.",
		"How do you gather and incorporate user feedback?",
		"What metrics do you use to measure product success?",
	},
	"Data Scientist": {
		"Walk me through your background in data science.",
		"Describe a complex data analysis project you worked on.",
		"How do you approach feature engineering and model selection?",
		"Explain how you communicate technical findings to non-technical stakeholders.",
		"What are your thoughts on the ethical implications of AI and machine learning?",
	},
}

// QuestionsForRole returns the prompt list for role, falling back to the
// Software Engineer list for unknown roles. The returned slice is a copy.
func QuestionsForRole(role string) []string {
	qs, ok := roleQuestions[role]
	if !ok {
		qs = roleQuestions[DefaultRole]
	}
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

// KnownRoles lists the roles that have a dedicated template.
func KnownRoles() []string {
	roles := make([]string, 0, len(roleQuestions))
	for role := range roleQuestions {
		roles = append(roles, role)
	}
	return roles
}
