package bot

// decorations are the profession and costume symbols used to decorate member
// mention links. The table size is part of the rendering contract: ids
// sharing a residue share a symbol.
var decorations = []string{
	"👮‍♂️", "👷‍♀️", "💂‍♀️", "🕵️‍♀️", "👩‍⚕️", "👨‍⚕️", "👩‍🌾",
	"👩‍🍳", "👩‍🎓", "👩‍🎤", "🧑‍🎤", "👨‍🎤", "👩‍🏫", "🧑‍🏫",
	"👩‍🏭", "👩‍💻", "👩‍💼", "👨‍💼", "👩‍🔧", "👩‍🔬", "👩‍🎨",
	"🧑‍🔬", "👨‍🎨", "👩‍🚒", "👩‍✈️", "👩‍🚀", "👩‍⚖️", "👨‍⚖️",
	"👰‍♀️", "🤵‍♀️", "🤵‍♂️", "👸", "🤴", "🥷", "🦸‍♀️",
	"🦸‍♂️", "🦹‍♀️", "🤶", "🧙‍♀️", "🧝‍♀️", "🧝", "🧌",
	"🧛‍♀️", "🧛‍♂️", "👼", "🤰", "🫃", "💁‍♀️", "💁‍♂️",
	"🙅‍♀️", "🙆‍♀️", "🙆", "🙋‍♀️", "🙋‍♂️", "🧏‍♀️", "🤦‍♀️",
	"🤦", "🤷‍♀️", "🙎‍♀️", "🙍‍♀️", "🙍‍♂️", "💇‍♀️", "💇‍♂️",
	"💆‍♀️", "💆‍♂️", "💅", "💃", "🕺", "🧑‍🦽", "🪢",
	"🧶", "🧵", "🪡", "🧥", "🥼", "🦺", "👚",
	"👕", "👖", "🩲", "🩳", "👔", "👗", "👙",
	"🩱", "👘", "🥻", "🩴", "🥿", "👠", "👡",
	"👢", "👞", "👟", "🥾", "🧦", "🧤",
}

// DecorationFor returns the decoration symbol for a member id. The mapping is
// deterministic and total; ids may be negative.
func DecorationFor(id int64) string {
	n := int64(len(decorations))
	return decorations[(id%n+n)%n]
}
