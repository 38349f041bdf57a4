package style

// Entry binds a prompt keyword to a base palette and a set of style
// overrides. Keywords are matched as substrings of the normalized
// prompt.
type Entry struct {
	Keyword string
	Palette [4]string
	Patch   Patch
}

// table is scanned top to bottom. Order is part of the observable
// contract: the palette comes from the first match only, while the
// overrides of every match are applied in table order.
var table = []Entry{
	{
		Keyword: "ocean",
		Palette: [4]string{"#0ea5e9", "#0369a1", "#22d3ee", "#0c4a6e"},
		Patch:   Patch{Motion: ptr(MotionWave), WaveHeight: ptr(0.85), Mood: ptr(MoodCalm)},
	},
	{
		Keyword: "sunset",
		Palette: [4]string{"#f97316", "#fb7185", "#fbbf24", "#7c2d12"},
		Patch:   Patch{Motion: ptr(MotionWave), Grain: ptr(0.45), Speed: ptr(0.9), Mood: ptr(MoodDreamy)},
	},
	{
		Keyword: "forest",
		Palette: [4]string{"#22c55e", "#14532d", "#a3e635", "#052e16"},
		Patch:   Patch{Motion: ptr(MotionParticle), ParticleCount: ptr(120), Mood: ptr(MoodCalm)},
	},
	{
		Keyword: "neon",
		Palette: [4]string{"#f0abfc", "#22d3ee", "#facc15", "#18181b"},
		Patch:   Patch{Motion: ptr(MotionBurst), Sparkle: ptr(true), Speed: ptr(1.3), Mood: ptr(MoodIntense)},
	},
	{
		Keyword: "aurora",
		Palette: [4]string{"#7c3aed", "#22d3ee", "#22c55e", "#0f172a"},
		Patch:   Patch{Motion: ptr(MotionNebula), WarpFactor: ptr(1.1)},
	},
	{
		Keyword: "fire",
		Palette: [4]string{"#ef4444", "#f97316", "#fbbf24", "#450a0a"},
		Patch:   Patch{Motion: ptr(MotionBurst), WaveHeight: ptr(0.9), Speed: ptr(1.4), Mood: ptr(MoodIntense)},
	},
	{
		Keyword: "galaxy",
		Palette: [4]string{"#8b5cf6", "#312e81", "#ec4899", "#1e1b4b"},
		Patch:   Patch{Motion: ptr(MotionNebula), ParticleCount: ptr(220), Sparkle: ptr(true), Mood: ptr(MoodDreamy)},
	},
	{
		Keyword: "storm",
		Palette: [4]string{"#64748b", "#334155", "#a5b4fc", "#0f172a"},
		Patch:   Patch{Motion: ptr(MotionWave), WaveHeight: ptr(1.0), WarpFactor: ptr(1.5), Grain: ptr(0.55), Mood: ptr(MoodIntense)},
	},
	{
		Keyword: "snow",
		Palette: [4]string{"#e0f2fe", "#bae6fd", "#f8fafc", "#1e293b"},
		Patch:   Patch{Motion: ptr(MotionParticle), ParticleCount: ptr(200), Speed: ptr(0.7), Mood: ptr(MoodCalm)},
	},
	{
		Keyword: "desert",
		Palette: [4]string{"#f59e0b", "#d97706", "#fde68a", "#451a03"},
		Patch:   Patch{Motion: ptr(MotionWave), WaveHeight: ptr(0.5), Speed: ptr(0.8), Grain: ptr(0.5), Mood: ptr(MoodCalm)},
	},
	{
		Keyword: "rain",
		Palette: [4]string{"#38bdf8", "#475569", "#94a3b8", "#0f172a"},
		Patch:   Patch{Motion: ptr(MotionParticle), ParticleCount: ptr(240), Speed: ptr(1.2), Mood: ptr(MoodDynamic)},
	},
}

// Keywords returns the table keywords in match order.
func Keywords() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.Keyword
	}
	return out
}

// Lookup returns the table entry for a keyword.
func Lookup(keyword string) (Entry, bool) {
	for _, e := range table {
		if e.Keyword == keyword {
			return e, true
		}
	}
	return Entry{}, false
}
