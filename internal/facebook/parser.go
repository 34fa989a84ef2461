// Extract profile signals from raw page HTML
// Facebook markup shifts constantly, so every signal has a conservative
// default and extraction never fails the request

package facebook

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"facebook-scorer/internal/scoring"
)

var (
	verifiedRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"is_verified":\s*true`),
		regexp.MustCompile(`(?i)verified_badge`),
		regexp.MustCompile(`(?i)aria-label="Verified"`),
	}

	followerRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)"followersCount":\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d[\d,]+)\s+people\s+follow\s+this`),
		regexp.MustCompile(`(?i)([\d,]+)\s+followers`),
	}

	reactionRegex     = regexp.MustCompile(`(?i)aria-label="[^"]*(Like|Love|Wow|Haha|Sad|Angry)[^"]*"`)
	commentRegex      = regexp.MustCompile(`(?i)comments?`)
	profilePhotoRegex = regexp.MustCompile(`(?i)profile_pic|profile.*picture`)
	coverPhotoRegex   = regexp.MustCompile(`(?i)cover_photo|cover.*image`)
	bioRegex          = regexp.MustCompile(`(?is)<div[^>]*?(about|bio)[^>]*>(.*?)</div>`)
	htmlTagRegex      = regexp.MustCompile(`<[^>]+>`)
)

// maxEngagementRate caps the reaction-derived engagement estimate. Raw
// counts on public pages overstate engagement badly past this point.
const maxEngagementRate = 0.9

// ParseProfile extracts scoring signals from a profile page. Signals that
// cannot be found keep a mid-range default rather than zeroing the score.
func ParseProfile(html, username string) scoring.Profile {
	profile := scoring.Profile{
		Username:        username,
		Followers:       10000,
		Likes:           10000,
		PostsCount:      10,
		EngagementRate:  0.3,
		BioLength:       100,
		HasProfilePhoto: true,
		HasCoverPhoto:   true,
	}

	for _, re := range verifiedRegexes {
		if re.MatchString(html) {
			profile.IsVerified = true
			break
		}
	}

	for _, re := range followerRegexes {
		match := re.FindStringSubmatch(html)
		if match == nil {
			continue
		}
		count, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
		if err != nil {
			continue
		}
		profile.Followers = count
		break
	}

	reactions := len(reactionRegex.FindAllString(html, -1))
	comments := len(commentRegex.FindAllString(html, -1))
	profile.EngagementRate = safeDivide(float64(reactions+comments), float64(profile.PostsCount*3))
	if profile.EngagementRate > maxEngagementRate {
		profile.EngagementRate = maxEngagementRate
	}

	profile.HasProfilePhoto = profilePhotoRegex.MatchString(html)
	profile.HasCoverPhoto = coverPhotoRegex.MatchString(html)

	if match := bioRegex.FindStringSubmatch(html); match != nil {
		bio := htmlTagRegex.ReplaceAllString(match[2], "")
		//characters, not bytes: non-Latin bios must not inflate the length
		profile.BioLength = utf8.RuneCountInString(normalizeText(strings.TrimSpace(bio)))
	}

	return profile
}

// normalizeText strips diacritics so bio length measures characters, not
// combining marks.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return result
}

func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
