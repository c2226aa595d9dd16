package tracking

type entry struct{ id, title string }

type bucket struct {
	id, label string
	entries   []entry
}

var immunizationSchedule = []bucket{
	{"birth", "Birth", []entry{
		{"bcg", "BCG"},
		{"hepb-1", "Hepatitis B (dose 1)"},
	}},
	{"2m", "2 months", []entry{
		{"dtap-1", "DTaP (dose 1)"},
		{"hib-1", "Hib (dose 1)"},
		{"ipv-1", "Polio IPV (dose 1)"},
		{"pcv-1", "Pneumococcal PCV (dose 1)"},
		{"rv-1", "Rotavirus (dose 1)"},
		{"hepb-2", "Hepatitis B (dose 2)"},
	}},
	{"4m", "4 months", []entry{
		{"dtap-2", "DTaP (dose 2)"},
		{"hib-2", "Hib (dose 2)"},
		{"ipv-2", "Polio IPV (dose 2)"},
		{"pcv-2", "Pneumococcal PCV (dose 2)"},
		{"rv-2", "Rotavirus (dose 2)"},
	}},
	{"6m", "6 months", []entry{
		{"dtap-3", "DTaP (dose 3)"},
		{"hib-3", "Hib (dose 3)"},
		{"pcv-3", "Pneumococcal PCV (dose 3)"},
		{"hepb-3", "Hepatitis B (dose 3)"},
		{"flu-1", "Influenza (yearly)"},
	}},
	{"12m", "12 months", []entry{
		{"mmr-1", "MMR (dose 1)"},
		{"var-1", "Varicella (dose 1)"},
		{"hepa-1", "Hepatitis A (dose 1)"},
		{"pcv-4", "Pneumococcal PCV (booster)"},
	}},
	{"18m", "18 months", []entry{
		{"dtap-4", "DTaP (dose 4)"},
		{"hib-4", "Hib (booster)"},
		{"hepa-2", "Hepatitis A (dose 2)"},
	}},
}

var milestoneCatalogue = []bucket{
	{"2m", "2 months", []entry{
		{"social-smile", "Smiles at people"},
		{"coos", "Coos and makes gurgling sounds"},
		{"holds-head", "Holds head up during tummy time"},
	}},
	{"4m", "4 months", []entry{
		{"laughs", "Laughs out loud"},
		{"reaches-toy", "Reaches for a toy with one hand"},
		{"pushes-up", "Pushes up onto elbows on tummy"},
	}},
	{"6m", "6 months", []entry{
		{"rolls-over", "Rolls from tummy to back"},
		{"responds-name", "Responds to own name"},
		{"sits-support", "Sits with support"},
	}},
	{"9m", "9 months", []entry{
		{"sits-alone", "Sits without support"},
		{"babbles", "Babbles \"mamama\" and \"bababa\""},
		{"pincer-grasp", "Picks up small objects with thumb and finger"},
	}},
	{"12m", "12 months", []entry{
		{"pulls-stand", "Pulls up to stand"},
		{"waves-bye", "Waves bye-bye"},
		{"first-word", "Says a first word"},
	}},
	{"18m", "18 months", []entry{
		{"walks-alone", "Walks without holding on"},
		{"points-show", "Points to show interest"},
		{"uses-spoon", "Tries to use a spoon"},
	}},
	{"24m", "24 months", []entry{
		{"two-words", "Says two words together"},
		{"kicks-ball", "Kicks a ball"},
		{"runs", "Runs"},
	}},
}

func build(buckets []bucket) []Group {
	groups := make([]Group, 0, len(buckets))
	for _, b := range buckets {
		g := Group{ID: b.id, Label: b.label, Records: make([]Record, 0, len(b.entries))}
		for _, e := range b.entries {
			g.Records = append(g.Records, Record{
				ID:         e.id,
				GroupID:    b.id,
				GroupLabel: b.label,
				Title:      e.title,
				Status:     StatusPending,
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// DefaultImmunizationSchedule returns a fresh copy of the built-in vaccine
// schedule, birth to 18 months, with every dose pending.
func DefaultImmunizationSchedule() []Group {
	return build(immunizationSchedule)
}

// DefaultMilestones returns a fresh copy of the built-in milestone list,
// 2 to 24 months.
func DefaultMilestones() []Group {
	return build(milestoneCatalogue)
}

// DefaultGroups returns the built-in catalogue for kind.
func DefaultGroups(kind Kind) []Group {
	if kind == KindMilestone {
		return DefaultMilestones()
	}
	return DefaultImmunizationSchedule()
}
