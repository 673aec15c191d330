package progression

// Catalog bundles the achievement definitions and daily challenge templates
// the engine evaluates against. Content lives in code so deployments pick up
// new entries with a release rather than a data migration.
type Catalog struct {
	Achievements []AchievementDef
	Challenges   []ChallengeTemplate
}

// DefaultCatalog returns the stock SpanTrek catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Achievements: DefaultAchievements(),
		Challenges:   DefaultChallengeTemplates(),
	}
}

// DefaultAchievements is the stock achievement set. Codes are stable
// identifiers persisted on learner progressions; never rename one.
func DefaultAchievements() []AchievementDef {
	return []AchievementDef{
		{Code: "streak_3", Name: "Getting Warmed Up", Description: "Keep a 3 day learning streak", Icon: "🔥", Condition: CondStreak, Threshold: 3, ExperienceAward: 75},
		{Code: "streak_7", Name: "Week One Wonder", Description: "Keep a 7 day learning streak", Icon: "🔥", Condition: CondStreak, Threshold: 7, ExperienceAward: 150},
		{Code: "streak_30", Name: "Unstoppable", Description: "Keep a 30 day learning streak", Icon: "🔥", Condition: CondStreak, Threshold: 30, ExperienceAward: 500},

		{Code: "level_2", Name: "First Steps", Description: "Reach level 2", Icon: "⭐", Condition: CondLevel, Threshold: 2, ExperienceAward: 50},
		{Code: "level_5", Name: "Moving Up", Description: "Reach level 5", Icon: "⭐", Condition: CondLevel, Threshold: 5, ExperienceAward: 100},
		{Code: "level_10", Name: "Double Digits", Description: "Reach level 10", Icon: "🌟", Condition: CondLevel, Threshold: 10, ExperienceAward: 250},
		{Code: "level_20", Name: "Seasoned Traveler", Description: "Reach level 20", Icon: "🌟", Condition: CondLevel, Threshold: 20, ExperienceAward: 500},

		{Code: "experience_250", Name: "Point Collector", Description: "Earn 250 experience points", Icon: "💎", Condition: CondExperience, Threshold: 250, ExperienceAward: 25},
		{Code: "experience_2500", Name: "Point Hoarder", Description: "Earn 2500 experience points", Icon: "💎", Condition: CondExperience, Threshold: 2500, ExperienceAward: 100},
		{Code: "experience_5000", Name: "Point Tycoon", Description: "Earn 5000 experience points", Icon: "💎", Condition: CondExperience, Threshold: 5000, ExperienceAward: 300},

		{Code: "adventure_1", Name: "The Journey Begins", Description: "Complete your first lesson", Icon: "🧭", Condition: CondAdventure, Threshold: 1, ExperienceAward: 150},
		{Code: "adventure_poland_50", Name: "Halfway Through Poland", Description: "Complete half of the Poland lessons", Icon: "🇵🇱", Condition: CondCountryPercent, Threshold: 50, Country: "poland", ExperienceAward: 125},
		{Code: "adventure_poland_complete", Name: "Poland Conquered", Description: "Complete every Poland lesson", Icon: "🇵🇱", Condition: CondCountryPercent, Threshold: 100, Country: "poland", ExperienceAward: 500},
		{Code: "adventure_spain_50", Name: "Halfway Through Spain", Description: "Complete half of the Spain lessons", Icon: "🇪🇸", Condition: CondCountryPercent, Threshold: 50, Country: "spain", ExperienceAward: 125},
		{Code: "adventure_spain_complete", Name: "Spain Conquered", Description: "Complete every Spain lesson", Icon: "🇪🇸", Condition: CondCountryPercent, Threshold: 100, Country: "spain", ExperienceAward: 500},

		{Code: "lesson_before_10", Name: "Early Bird", Description: "Finish a lesson before 10 in the morning", Icon: "🌅", Condition: CondBeforeHour, Threshold: EarlyBirdHour, ExperienceAward: 75},
		{Code: "lesson_after_22", Name: "Night Owl", Description: "Finish a lesson after 10 at night", Icon: "🦉", Condition: CondAfterHour, Threshold: NightOwlHour, ExperienceAward: 75},

		{Code: "vocabulary_100", Name: "Word Wizard", Description: "Learn 100 words", Icon: "📖", Condition: CondWordsLearned, Threshold: 100, ExperienceAward: 250},
		{Code: "sentence_25", Name: "Sentence Builder", Description: "Learn 25 sentences", Icon: "✍️", Condition: CondSentencesLearned, Threshold: 25, ExperienceAward: 250},
		{Code: "audio_25", Name: "Good Listener", Description: "Learn 25 audio clips", Icon: "🎧", Condition: CondAudioLearned, Threshold: 25, ExperienceAward: 250},
		{Code: "use_of_spanish_50", Name: "Grammar Guru", Description: "Master 50 use of Spanish topics", Icon: "🎓", Condition: CondUseOfSpanish, Threshold: 50, ExperienceAward: 250},

		{Code: "well_rounded", Name: "Well Rounded", Description: "Reach level 3 with a 5 day streak", Icon: "🏅", Condition: CondCustom, Custom: CustomWellRounded, ExperienceAward: 100},
		{Code: "perfectionist", Name: "Perfectionist", Description: "Match your level and streak at 10 or above", Icon: "🏆", Condition: CondCustom, Custom: CustomPerfectionist, ExperienceAward: 200},
	}
}

// DefaultChallengeTemplates is the stock daily challenge pool. The code
// prefix drives advancement (see CategoryOf).
func DefaultChallengeTemplates() []ChallengeTemplate {
	return []ChallengeTemplate{
		{Code: "EX1", Description: "Earn 100 experience points today", MaxProgress: 100},
		{Code: "EX2", Description: "Earn 200 experience points today", MaxProgress: 200},
		{Code: "C1", Description: "Complete a lesson today", MaxProgress: 1},
		{Code: "C2", Description: "Complete 2 lessons today", MaxProgress: 2},
		{Code: "P1", Description: "Finish a practice session today", MaxProgress: 1},
		{Code: "P3", Description: "Finish 3 practice sessions today", MaxProgress: 3},
		{Code: "RP1", Description: "Finish a random practice session", MaxProgress: 1},
		{Code: "VP1", Description: "Finish a vocabulary practice session", MaxProgress: 1},
		{Code: "SP1", Description: "Finish a sentence practice session", MaxProgress: 1},
		{Code: "LP1", Description: "Finish a listening practice session", MaxProgress: 1},
		{Code: "NW5", Description: "Learn 5 new words today", MaxProgress: 5},
		{Code: "NS3", Description: "Learn 3 new sentences today", MaxProgress: 3},
		{Code: "NA3", Description: "Learn 3 new audio clips today", MaxProgress: 3},
	}
}

// FindAchievement looks up a definition by code.
func (c Catalog) FindAchievement(code string) (AchievementDef, bool) {
	for _, def := range c.Achievements {
		if def.Code == code {
			return def, true
		}
	}
	return AchievementDef{}, false
}
