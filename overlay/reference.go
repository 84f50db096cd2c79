// Package overlay holds the modal surfaces drawn over the scene: the video
// lightbox, the end card, and the credits panel.
package overlay

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/milk9111/musicstrip/scenes"
)

const (
	introKey       = "tvintro"
	defaultClipDir = "video"
	clipExt        = ".webm"
)

var participantSeparators = []*regexp.Regexp{
	regexp.MustCompile(`\n|\r`),
	regexp.MustCompile(`\s+-\s+`),
	regexp.MustCompile(`\.\s+`),
}

// Reference is everything the lightbox shows for one video.
type Reference struct {
	Index        int
	Key          string
	URL          string
	ClipPath     string
	Participants string
	Names        string
	Description  string
}

// PlayerURL is the embeddable form of a vimeo link.
func (r Reference) PlayerURL() string {
	return strings.Replace(r.URL, "vimeo.com/", "player.vimeo.com/video/", 1)
}

type Catalog struct {
	fallback string
	clipDir  string
	entries  map[string]scenes.VideoSpec
}

func NewCatalog(spec scenes.VideoCatalogSpec) *Catalog {
	c := &Catalog{
		fallback: spec.Fallback,
		clipDir:  spec.ClipDir,
		entries:  make(map[string]scenes.VideoSpec, len(spec.Entries)),
	}
	if c.fallback == "" {
		c.fallback = introKey
	}
	if c.clipDir == "" {
		c.clipDir = defaultClipDir
	}
	for _, e := range spec.Entries {
		c.entries[e.Key] = e
	}
	return c
}

// Reference resolves a video index. Index 0 is the intro; an index with no
// catalog entry plays the fallback link without participants.
func (c *Catalog) Reference(index int) Reference {
	key := c.fallback
	if index > 0 {
		key = strconv.Itoa(index)
	}
	entry, ok := c.entries[key]
	if !ok {
		entry = c.entries[c.fallback]
		entry.Participants = ""
	}

	names, description := splitParticipants(entry.Participants)
	return Reference{
		Index:        index,
		Key:          key,
		URL:          entry.URL,
		ClipPath:     path.Join(c.clipDir, key+clipExt),
		Participants: entry.Participants,
		Names:        names,
		Description:  description,
	}
}

// splitParticipants separates the names from the description, trying a line
// break first, then a spaced dash, then a sentence end.
func splitParticipants(s string) (string, string) {
	if strings.TrimSpace(s) == "" {
		return "", ""
	}
	parts := []string{s}
	for _, sep := range participantSeparators {
		if parts = sep.Split(s, -1); len(parts) >= 2 {
			break
		}
	}
	names := strings.TrimSpace(parts[0])
	description := strings.TrimSpace(strings.Join(parts[1:], " "))
	return names, description
}
