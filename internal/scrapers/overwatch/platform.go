package overwatch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"overstats/internal/profile"
)

type Platform string

const (
	PlatformPC          Platform = "pc"
	PlatformXbox        Platform = "xbl"
	PlatformPlaystation Platform = "psn"
)

var Platforms = []Platform{PlatformPC, PlatformXbox, PlatformPlaystation}

var (
	ErrInvalidBattletag = errors.New("invalid battletag")
	ErrPlayerNotFound   = errors.New("player not found")
)

func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: platform=%q is not one of %v", profile.ErrInvalidArgument, s, Platforms)
}

// CareerPath returns the path of the career page of a player relative to the
// site's base url. Battletags on pc are written "Name#1234" but addressed as
// "Name-1234".
func CareerPath(platform Platform, battletag string) (string, error) {
	if _, err := ParsePlatform(string(platform)); err != nil {
		return "", err
	}

	battletag = strings.TrimSpace(battletag)
	if battletag == "" {
		return "", fmt.Errorf("%w: battletag is empty", ErrInvalidBattletag)
	}
	if platform == PlatformPC {
		battletag = strings.ReplaceAll(battletag, "#", "-")
	}

	return fmt.Sprintf("/career/%s/%s", platform, url.PathEscape(battletag)), nil
}
