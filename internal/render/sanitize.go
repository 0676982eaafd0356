package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// codeLanguagePattern admits only the language classes Goldmark attaches to
// fenced code blocks.
var codeLanguagePattern = regexp.MustCompile(`^language-[a-zA-Z0-9#+._-]+$`)

// NewPolicy returns the sanitizer policy applied to every rendered page.
//
// The baseline is bluemonday's UGC policy. On top of it the policy admits the
// embeddable media documentation pages carry (video, audio, iframe and their
// playback attributes), the tel: scheme, and the language class on code
// elements. Forced rel="nofollow" is switched off so that site-internal
// cross-references stay plain links.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowURLSchemes("tel")
	p.RequireNoFollowOnLinks(false)

	p.AllowElements("video", "audio", "source", "track", "iframe")
	p.AllowAttrs("src", "poster", "width", "height").OnElements("video")
	p.AllowAttrs("src").OnElements("audio", "source", "track")
	p.AllowAttrs("controls", "autoplay", "loop", "muted", "playsinline", "preload").OnElements("video", "audio")
	p.AllowAttrs("type").OnElements("source")
	p.AllowAttrs("kind", "srclang", "label", "default").OnElements("track")
	p.AllowAttrs("src", "width", "height", "title", "allow", "allowfullscreen", "frameborder", "loading").OnElements("iframe")

	p.AllowAttrs("class").Matching(codeLanguagePattern).OnElements("code")

	return p
}
