package catalog

import "strings"

type PublisherInfo struct {
	Logo        string
	Description string
}

var publisherInfo = map[string]PublisherInfo{
	"Car & Driver":   {Logo: "CD", Description: "The definitive voice in automotive journalism since 1955."},
	"Top Gear":       {Logo: "TG", Description: "Global motoring entertainment and serious road testing."},
	"MotorTrend":     {Logo: "MT", Description: "Covering the automotive industry with depth and precision."},
	"Autocar":        {Logo: "AC", Description: "The world's oldest car magazine, established 1895."},
	"Road & Track":   {Logo: "RT", Description: "For the enthusiast driver."},
	"EV Inside":      {Logo: "EV", Description: "Breaking news from the electric frontier."},
	"F1 Journal":     {Logo: "F1", Description: "Technical analysis from the paddock."},
	"Bloomberg Auto": {Logo: "BB", Description: "The business of mobility."},
}

// GetPublisherInfo returns the known metadata for a publisher, or a
// generated fallback for publishers outside the masthead list.
func GetPublisherInfo(publisher string) PublisherInfo {
	if info, ok := publisherInfo[publisher]; ok {
		return info
	}
	return PublisherInfo{
		Logo:        fallbackLogo(publisher),
		Description: "A leading voice in the global automotive conversation.",
	}
}

// PublisherLogo returns the 2-character initials string for a publisher.
func PublisherLogo(publisher string) string {
	return GetPublisherInfo(publisher).Logo
}

func fallbackLogo(publisher string) string {
	initials := []rune(strings.ToUpper(publisher))
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return string(initials)
}
