package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/providers/llm"
)

// Prompt builders are pure: domain inputs plus optional history in, a
// schema-constrained llm.Request out. The enumerated field names below are
// load-bearing; the decoders depend on them.

const medicalSystemPrompt = `You are an AI medical assistant. Provide helpful information about medical conditions and symptoms.
Always include appropriate disclaimers that you are not a replacement for professional medical advice.
Format your response as a structured JSON with the following fields:
- answer: Your informative response to the query
- possible_conditions: An array of potential conditions related to the described symptoms
- recommendations: General advice and suggestion to consult with a healthcare provider
- doctor_referrals: An array of specialist types that would be appropriate to consult
- precautions: Immediate steps or precautions the person should take
- disclaimer: A clear medical disclaimer`

func MedicalPrompt(query string, history []llm.Message) llm.Request {
	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: "user", Text: query})

	return llm.Request{
		System:   medicalSystemPrompt,
		Messages: msgs,
	}
}

func DietPrompt(p models.UserHealthProfile, history []llm.Message) llm.Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a personalized diet plan for a %d-year-old %s with the following characteristics:\n", p.Age, p.Sex)
	fmt.Fprintf(&sb, "- Weight: %.1f kg\n", p.Weight)
	fmt.Fprintf(&sb, "- Height: %.1f cm\n", p.Height)
	fmt.Fprintf(&sb, "- Health issues: %s\n", joinOr(p.HealthIssues, "None reported"))
	fmt.Fprintf(&sb, "- Sleep patterns: %s hours per night\n", orNotSpecified(p.SleepHours))
	fmt.Fprintf(&sb, "- Activity level: %s\n", stringOr(p.ActivityLevel, "Not specified"))
	fmt.Fprintf(&sb, "- Dietary preferences: %s\n", joinOr(p.DietaryPreferences, "None specified"))
	fmt.Fprintf(&sb, "- Allergies: %s\n", joinOr(p.Allergies, "None reported"))
	sb.WriteString(`
Please include:
1. Daily calorie recommendation
2. Macronutrient ratio (protein, carbs, fats)
3. Meal plan with specific food suggestions
4. Hydration recommendations
5. Supplement suggestions if appropriate
6. Lifestyle recommendations

Format your response as a structured JSON with these fields:
- daily_calories: recommended daily calorie intake
- macronutrient_ratio: object with protein, carbohydrates, and fats percentages
- meal_plan: object with arrays for breakfast, lunch, dinner, and snacks
- hydration: water intake recommendation
- supplements: any recommended supplements
- lifestyle_recommendations: array of lifestyle suggestions`)

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: "user", Text: sb.String()})

	return llm.Request{
		System:   "You are a nutritionist and dietitian assistant.",
		Messages: msgs,
	}
}

func PredictionPrompt(p models.UserHealthProfile) llm.Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the following health information, provide predictions about potential health metrics and disease risks for a %d-year-old %s:\n\n", p.Age, p.Sex)
	fmt.Fprintf(&sb, "- Weight: %.1f kg\n", p.Weight)
	fmt.Fprintf(&sb, "- Height: %.1f cm\n", p.Height)
	fmt.Fprintf(&sb, "- Health issues: %s\n", joinOr(p.HealthIssues, "None reported"))
	fmt.Fprintf(&sb, "- Sleep patterns: %s hours per night\n", orNotSpecified(p.SleepHours))
	fmt.Fprintf(&sb, "- Activity level: %s\n", stringOr(p.ActivityLevel, "Not specified"))
	fmt.Fprintf(&sb, "- Family history: %s\n", familyHistory(p.FamilyHistory))
	fmt.Fprintf(&sb, "- Current medications: %s\n", joinOr(p.CurrentMedications, "None"))
	fmt.Fprintf(&sb, "- Daily routine: %s\n", stringOr(p.DailyRoutine, "Not specified"))
	sb.WriteString(`
Please include:
1. Estimated lifespan based on statistical averages
2. Risk assessment for common conditions (heart disease, diabetes, etc.)
3. Health improvement suggestions
4. A clear disclaimer about the statistical nature of these predictions

Format your response as a structured JSON with these fields:
- estimated_lifespan: numerical estimate
- disease_risks: object with different conditions and their risk levels
- health_improvement_suggestions: array of actionable suggestions
- disclaimer: clear statement about limitations of these predictions`)

	return llm.Request{
		System:   "You are a health analytics assistant. Provide health predictions based on statistical averages while clearly stating limitations.",
		Messages: []llm.Message{{Role: "user", Text: sb.String()}},
	}
}

const reportPrompt = `Please analyze this medical report/prescription and provide the following information:
1. A clear summary of the report in simple language
2. List all medications mentioned with their dosages, frequencies, and purposes
3. Highlight any specific recommendations or instructions for the patient
4. Note any concerns or potential issues the patient should be aware of

Format your response as a structured JSON with the following fields:
- summary: A concise overview of the report
- medications: An array of medication objects with name, dosage, frequency, and purpose
- recommendations: Specific actions or follow-ups the patient should take
- concerns: Any warnings or potential issues to be aware of`

func ReportPrompt(image []byte, contentType string) llm.Request {
	return llm.Request{
		System:    "You are a medical assistant that analyzes medical reports and prescriptions.",
		Messages:  []llm.Message{{Role: "user", Text: reportPrompt}},
		Image:     image,
		ImageMIME: contentType,
	}
}

// DirectoryPrompt declares the fixed {"doctors": [...]} wrapper shape the
// directory decoder expects.
func DirectoryPrompt() llm.Request {
	const prompt = `Generate a list of 5 example doctors with different specialties.
Include their name, specialty, contact information, and location.
Format the response as a JSON object with a single "doctors" field holding an array of doctor objects,
each with the fields name, specialty, contact, and location.`

	return llm.Request{
		System:   "You are an assistant helping to generate sample doctor data.",
		Messages: []llm.Message{{Role: "user", Text: prompt}},
	}
}

func joinOr(vals []string, fallback string) string {
	if len(vals) == 0 {
		return fallback
	}
	return strings.Join(vals, ", ")
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func orNotSpecified(hours float64) string {
	if hours <= 0 {
		return "Not specified"
	}
	return fmt.Sprintf("%.1f", hours)
}

func familyHistory(fh map[string]string) string {
	if len(fh) == 0 {
		return "None reported"
	}
	parts := make([]string, 0, len(fh))
	for k, v := range fh {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
