package activity

// Directory maps activity names to their records.
type Directory map[string]Activity

// Clone deep-copies every record.
func (d Directory) Clone() Directory {
	out := make(Directory, len(d))
	for name, a := range d {
		out[name] = a.Clone()
	}
	return out
}

// Validate checks every record in the directory.
func (d Directory) Validate() error {
	for name, a := range d {
		if err := a.Validate(name); err != nil {
			return err
		}
	}
	return nil
}

// DefaultSeed returns the built-in Mergington High School roster.
func DefaultSeed() Directory {
	return Directory{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Soccer Team": {
			Description:     "Join the school soccer team and compete in matches",
			Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 18,
			Participants:    []string{"lucas@mergington.edu", "mia@mergington.edu"},
		},
		"Basketball Club": {
			Description:     "Practice basketball skills and play friendly games",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"liam@mergington.edu", "ava@mergington.edu"},
		},
		"Art Workshop": {
			Description:     "Explore painting, drawing, and sculpture techniques",
			Schedule:        "Mondays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"ella@mergington.edu", "noah@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Act, direct, and produce school plays and performances",
			Schedule:        "Fridays, 3:30 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"isabella@mergington.edu", "jack@mergington.edu"},
		},
		"Mathletes": {
			Description:     "Compete in math competitions and solve challenging problems",
			Schedule:        "Tuesdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"oliver@mergington.edu", "charlotte@mergington.edu"},
		},
		"Science Club": {
			Description:     "Conduct experiments and explore scientific concepts",
			Schedule:        "Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"amelia@mergington.edu", "benjamin@mergington.edu"},
		},
	}
}
