// Package skilldata embeds the deckmerge skill files installed by
// "deckmerge init". The embedded filesystem is rooted at "skill/deckmerge/".
package skilldata

import "embed"

// Root is the embed path holding the skill tree.
const Root = "skill/deckmerge"

// SkillFS contains the embedded skill files. Walk from Root to iterate
// over all files.
//
//go:embed all:skill
var SkillFS embed.FS
