package catalog

import "github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"

// governingLawOptions is shared by several flows.
var governingLawOptions = []Option{
	{Label: "New South Wales", Value: "nsw"},
	{Label: "Victoria", Value: "vic"},
	{Label: "Queensland", Value: "qld"},
	{Label: "Western Australia", Value: "wa"},
}

// Default returns the shipped catalog of deal documents. The construction is
// validated once at startup; a panic here means the table itself is broken.
func Default() *Catalog {
	c, err := New(defaultTypes(), defaultAliases())
	if err != nil {
		panic("catalog: default table invalid: " + err.Error())
	}
	return c
}

func defaultAliases() []Alias {
	return []Alias{
		{Text: "nda", Name: "Non-Disclosure Agreement"},
		{Text: "non disclosure", Name: "Non-Disclosure Agreement"},
		{Text: "confidentiality agreement", Name: "Non-Disclosure Agreement"},
		{Text: "confidentiality deed", Name: "Non-Disclosure Agreement"},
		{Text: "secrecy agreement", Name: "Non-Disclosure Agreement"},
		{Text: "loi", Name: "Letter of Intent"},
		{Text: "letter of intent", Name: "Letter of Intent"},
		{Text: "intent letter", Name: "Letter of Intent"},
		{Text: "term sheet", Name: "Term Sheet"},
		{Text: "termsheet", Name: "Term Sheet"},
		{Text: "heads of terms", Name: "Term Sheet"},
		{Text: "hoa", Name: "Heads of Agreement"},
		{Text: "heads of agreement", Name: "Heads of Agreement"},
		{Text: "mou", Name: "Heads of Agreement"},
		{Text: "memorandum of understanding", Name: "Heads of Agreement"},
		{Text: "spa", Name: "Share Purchase Agreement"},
		{Text: "share sale agreement", Name: "Share Purchase Agreement"},
		{Text: "share purchase", Name: "Share Purchase Agreement"},
		{Text: "stock purchase agreement", Name: "Share Purchase Agreement"},
		{Text: "consultancy", Name: "Consultancy Agreement"},
		{Text: "consulting agreement", Name: "Consultancy Agreement"},
		{Text: "contractor agreement", Name: "Consultancy Agreement"},
		{Text: "services agreement", Name: "Consultancy Agreement"},
	}
}

func defaultTypes() []DocumentType {
	return []DocumentType{
		{
			Name:        "Non-Disclosure Agreement",
			DisplayName: "Non-Disclosure Agreement (NDA)",
			Description: "Protects confidential information exchanged while exploring a deal.",
			Questions: []Question{
				{
					ID:     "parties",
					Prompt: "Will confidential information flow one way or both ways?",
					Help:   "Mutual NDAs are common when both sides open their books during negotiations.",
					Options: []Option{
						{Label: "Mutual", Value: "mutual", Description: "both parties disclose and receive"},
						{Label: "One-way", Value: "one_way", Description: "only one party discloses"},
					},
				},
				{
					ID:     "receiving_party",
					Prompt: "Which party will receive the confidential information?",
					Options: []Option{
						{Label: "The buyer", Value: "buyer"},
						{Label: "The seller", Value: "seller"},
					},
					AllowCustom: true,
					// A mutual NDA has no single receiving party.
					Skip: func(answers map[string]models.Answer) bool {
						return answers["parties"].Value == "mutual"
					},
				},
				{
					ID:     "purpose",
					Prompt: "What is the purpose of the disclosure?",
					Options: []Option{
						{Label: "Evaluating a potential acquisition", Value: "acquisition"},
						{Label: "Forming a joint venture", Value: "joint_venture"},
						{Label: "Engaging a supplier or contractor", Value: "supplier"},
					},
					AllowCustom: true,
				},
				{
					ID:     "duration",
					Prompt: "How long should the confidentiality obligations last?",
					Options: []Option{
						{Label: "1 year", Value: "1_year"},
						{Label: "2 years", Value: "2_years"},
						{Label: "3 years", Value: "3_years"},
						{Label: "5 years", Value: "5_years"},
						{Label: "Indefinitely", Value: "indefinite", Description: "until the information ceases to be confidential"},
					},
				},
				{
					ID:      "governing_law",
					Prompt:  "Which state's law should govern the agreement?",
					Options: governingLawOptions,
				},
			},
			Required: []string{"parties", "purpose", "duration", "governing_law"},
		},
		{
			Name:        "Letter of Intent",
			DisplayName: "Letter of Intent (LOI)",
			Description: "Records the intended shape of a transaction before definitive documents are drafted.",
			Questions: []Question{
				{
					ID:     "transaction_type",
					Prompt: "What kind of transaction is contemplated?",
					Options: []Option{
						{Label: "Share sale", Value: "share_sale"},
						{Label: "Asset sale", Value: "asset_sale"},
						{Label: "Merger", Value: "merger"},
						{Label: "Equity investment", Value: "investment"},
					},
				},
				{
					ID:     "binding_status",
					Prompt: "Should the letter be binding?",
					Help:   "Hybrid letters bind only selected clauses such as exclusivity and confidentiality.",
					Options: []Option{
						{Label: "Non-binding", Value: "non_binding"},
						{Label: "Binding", Value: "binding"},
						{Label: "Hybrid", Value: "hybrid", Description: "binding for exclusivity and confidentiality only"},
					},
				},
				{
					ID:     "exclusivity",
					Prompt: "Should the seller grant an exclusivity period?",
					Options: []Option{
						{Label: "30 days", Value: "30_days"},
						{Label: "60 days", Value: "60_days"},
						{Label: "90 days", Value: "90_days"},
						{Label: "No exclusivity", Value: "none"},
					},
					AllowCustom: true,
				},
				{
					ID:     "conditions",
					Prompt: "What is the main condition the deal depends on?",
					Options: []Option{
						{Label: "Satisfactory due diligence", Value: "due_diligence"},
						{Label: "Financing", Value: "financing"},
						{Label: "Board approval", Value: "board_approval"},
						{Label: "Regulatory approval", Value: "regulatory"},
					},
					AllowCustom: true,
				},
				{
					ID:          "timetable",
					Prompt:      "Is there a target date for signing definitive documents?",
					Options:     []Option{{Label: "No target date", Value: "none"}},
					AllowCustom: true,
				},
			},
			Required: []string{"transaction_type", "binding_status", "exclusivity"},
		},
		{
			Name:        "Term Sheet",
			DisplayName: "Term Sheet",
			Description: "Summarises the commercial terms of an investment round.",
			Questions: []Question{
				{
					ID:     "instrument",
					Prompt: "What instrument is being issued?",
					Options: []Option{
						{Label: "Ordinary shares", Value: "ordinary_shares"},
						{Label: "Preference shares", Value: "preference_shares"},
						{Label: "Convertible note", Value: "convertible_note"},
						{Label: "SAFE", Value: "safe", Description: "simple agreement for future equity"},
					},
				},
				{
					ID:          "raise_amount",
					Prompt:      "How much is being raised?",
					Help:        "State the amount in AUD, e.g. $2.5m.",
					AllowCustom: true,
				},
				{
					ID:     "valuation_basis",
					Prompt: "On what valuation basis is the round priced?",
					Options: []Option{
						{Label: "Pre-money valuation", Value: "pre_money"},
						{Label: "Post-money valuation", Value: "post_money"},
						{Label: "Capped note", Value: "capped", Description: "valuation cap with a discount"},
					},
				},
				{
					ID:     "investor_rights",
					Prompt: "Which investor right matters most in this round?",
					Options: []Option{
						{Label: "Board seat", Value: "board_seat"},
						{Label: "Pro-rata rights", Value: "pro_rata"},
						{Label: "Information rights", Value: "information"},
						{Label: "None of these", Value: "none"},
					},
					AllowCustom: true,
				},
				{
					ID:      "governing_law",
					Prompt:  "Which state's law should govern the term sheet?",
					Options: governingLawOptions,
				},
			},
			Required: []string{"instrument", "raise_amount", "valuation_basis"},
		},
		{
			Name:        "Heads of Agreement",
			DisplayName: "Heads of Agreement (HoA)",
			Description: "Sets out agreed commercial points as a framework for the formal contract.",
			Questions: []Question{
				{
					ID:     "deal_structure",
					Prompt: "What structure has been agreed in principle?",
					Options: []Option{
						{Label: "Business sale", Value: "business_sale"},
						{Label: "Joint venture", Value: "joint_venture"},
						{Label: "Licensing arrangement", Value: "licensing"},
						{Label: "Distribution arrangement", Value: "distribution"},
					},
					AllowCustom: true,
				},
				{
					ID:          "key_terms",
					Prompt:      "Summarise the key commercial terms agreed so far.",
					Help:        "Price, scope, and any milestones already shaken on.",
					AllowCustom: true,
				},
				{
					ID:     "binding_provisions",
					Prompt: "Which provisions should be legally binding?",
					Options: []Option{
						{Label: "Confidentiality and exclusivity only", Value: "confidentiality_exclusivity"},
						{Label: "All provisions", Value: "all"},
						{Label: "None", Value: "none", Description: "a purely moral commitment"},
					},
				},
				{
					ID:          "next_steps",
					Prompt:      "What is the next step after signing?",
					Options:     []Option{{Label: "Instruct lawyers to draft the formal contract", Value: "draft_contract"}},
					AllowCustom: true,
				},
			},
			Required: []string{"deal_structure", "key_terms", "binding_provisions"},
		},
		{
			Name:        "Share Purchase Agreement",
			DisplayName: "Share Purchase Agreement (SPA)",
			Description: "The definitive agreement for buying shares in a company.",
			Questions: []Question{
				{
					ID:     "sale_scope",
					Prompt: "What proportion of the shares is being sold?",
					Options: []Option{
						{Label: "All shares (100%)", Value: "all"},
						{Label: "Majority stake", Value: "majority"},
						{Label: "Minority stake", Value: "minority"},
					},
				},
				{
					ID:     "consideration",
					Prompt: "How will the purchase price be paid?",
					Options: []Option{
						{Label: "Cash at completion", Value: "cash"},
						{Label: "Deferred consideration", Value: "deferred"},
						{Label: "Earn-out", Value: "earn_out", Description: "price linked to post-completion performance"},
						{Label: "Buyer's shares (scrip)", Value: "scrip"},
					},
				},
				{
					ID:     "warranties",
					Prompt: "What scope of seller warranties is expected?",
					Options: []Option{
						{Label: "Full commercial warranties", Value: "full"},
						{Label: "Title and capacity only", Value: "title_only"},
					},
				},
				{
					ID:     "restraint",
					Prompt: "Will the sellers give a restraint of trade?",
					Options: []Option{
						{Label: "Yes", Value: "yes"},
						{Label: "No restraint", Value: "none"},
					},
				},
				{
					ID:     "restraint_period",
					Prompt: "How long should the restraint run?",
					Options: []Option{
						{Label: "1 year", Value: "1_year"},
						{Label: "2 years", Value: "2_years"},
						{Label: "3 years", Value: "3_years"},
					},
					Skip: func(answers map[string]models.Answer) bool {
						return answers["restraint"].Value == "none"
					},
				},
				{
					ID:      "governing_law",
					Prompt:  "Which state's law should govern the agreement?",
					Options: governingLawOptions,
				},
			},
			Required: []string{"sale_scope", "consideration", "warranties", "governing_law"},
		},
		{
			Name:        "Consultancy Agreement",
			DisplayName: "Consultancy Agreement",
			Description: "Engages an independent consultant or contractor for services.",
			Questions: []Question{
				{
					ID:     "engagement_basis",
					Prompt: "What is the basis of the engagement?",
					Options: []Option{
						{Label: "Fixed term", Value: "fixed_term"},
						{Label: "Ongoing until terminated", Value: "ongoing"},
						{Label: "Specific project", Value: "project"},
					},
				},
				{
					ID:     "fee_structure",
					Prompt: "How will the consultant be paid?",
					Options: []Option{
						{Label: "Hourly rate", Value: "hourly"},
						{Label: "Daily rate", Value: "daily"},
						{Label: "Fixed fee", Value: "fixed"},
						{Label: "Monthly retainer", Value: "retainer"},
					},
					AllowCustom: true,
				},
				{
					ID:     "ip_ownership",
					Prompt: "Who should own intellectual property created under the engagement?",
					Options: []Option{
						{Label: "The client", Value: "client", Description: "assignment of all work product"},
						{Label: "The consultant, with a licence granted back", Value: "consultant_licence"},
					},
				},
				{
					ID:     "termination_notice",
					Prompt: "How much notice should either side give to terminate?",
					Options: []Option{
						{Label: "1 week", Value: "1_week"},
						{Label: "2 weeks", Value: "2_weeks"},
						{Label: "1 month", Value: "1_month"},
					},
					AllowCustom: true,
				},
			},
			Required: []string{"engagement_basis", "fee_structure", "ip_ownership"},
		},
	}
}
