package publishsettings

import (
	"fmt"
	"strings"
)

const (
	// MSDeployHandler is the management handler path served by WMSvc.
	MSDeployHandler = "msdeploy.axd"
	// DefaultPort is inserted when the publish URL carries no port.
	DefaultPort = ":8172"

	AuthBasic = "basic"
	AuthNTLM  = "ntlm"
)

// ComputerName returns the management endpoint for a raw publish URL. Only the WMSvc
// and None agents get a normalized URL; other agents use the raw value as is.
func ComputerName(publishURL, siteName string, agent RemoteAgent) string {
	if agent.usesWMSvcURL() {
		return WMSvcURL(publishURL, siteName)
	}
	return publishURL
}

// WMSvcURL builds https://host:port/msdeploy.axd?site=name from a publish URL such as
//
//	foo.com:443/MSDeploy/msdeploy.axd
//	foo.com/MSDeploy/msdeploy.axd
//	foo.com:443
//	foo.com
//
// Values that already start with http are returned unchanged.
func WMSvcURL(publishURL, siteName string) string {
	if hasPrefixFold(publishURL, "http") {
		return publishURL
	}

	computerName := InsertPortIfNotSpecified(publishURL)
	computerName = AppendHandlerIfNotSpecified(computerName)

	if siteName != "" {
		return fmt.Sprintf("https://%s?site=%s", computerName, siteName)
	}
	return fmt.Sprintf("https://%s", computerName)
}

// AppendHandlerIfNotSpecified appends /msdeploy.axd unless the URL already ends with it.
func AppendHandlerIfNotSpecified(publishURL string) string {
	if hasSuffixFold(publishURL, MSDeployHandler) {
		return publishURL
	}
	if strings.HasSuffix(publishURL, "/") {
		return publishURL + MSDeployHandler
	}
	return publishURL + "/" + MSDeployHandler
}

// InsertPortIfNotSpecified adds DefaultPort after the host name when no port follows it.
// A colon only counts as a port separator when no '/' precedes it, since paths may
// contain colons.
func InsertPortIfNotSpecified(publishURL string) string {
	colonParts := strings.Split(publishURL, ":")

	if len(colonParts) == 1 {
		if slash := strings.Index(publishURL, "/"); slash > -1 {
			return publishURL[:slash] + DefaultPort + publishURL[slash:]
		}
		return publishURL + DefaultPort
	}

	if slash := strings.Index(colonParts[0], "/"); slash > -1 {
		colonParts[0] = colonParts[0][:slash] + DefaultPort + colonParts[0][slash:]
		return strings.Join(colonParts, ":")
	}

	return publishURL
}

// AuthenticationType picks the authentication scheme. An explicit useNTLM wins;
// otherwise WMSvc and None use basic and every other agent uses NTLM.
func AuthenticationType(useNTLM *bool, agent RemoteAgent) string {
	switch {
	case useNTLM != nil && *useNTLM:
		return AuthNTLM
	case useNTLM != nil:
		return AuthBasic
	case agent.usesWMSvcURL():
		return AuthBasic
	default:
		return AuthNTLM
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
