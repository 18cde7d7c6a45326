package publishsettings

import (
	"strconv"
	"strings"
)

// RemoteAgent identifies which remote management service answers on the publish URL.
type RemoteAgent int

const (
	WMSvc RemoteAgent = iota
	MSDepSvc
	TempAgent
	None
)

var remoteAgentNames = []string{"WMSvc", "MSDepSvc", "TempAgent", "None"}

func (a RemoteAgent) String() string {
	if a < 0 || int(a) >= len(remoteAgentNames) {
		return "RemoteAgent(" + strconv.Itoa(int(a)) + ")"
	}
	return remoteAgentNames[a]
}

// RemoteAgentNames returns the accepted agentType values in declaration order.
func RemoteAgentNames() []string {
	names := make([]string, len(remoteAgentNames))
	copy(names, remoteAgentNames)
	return names
}

// ParseRemoteAgent matches s against the agent names, ignoring case and surrounding spaces.
func ParseRemoteAgent(s string) (RemoteAgent, error) {
	v := strings.TrimSpace(s)
	for i, name := range remoteAgentNames {
		if strings.EqualFold(v, name) {
			return RemoteAgent(i), nil
		}
	}
	return None, &InvalidAgentTypeError{Value: s, Valid: RemoteAgentNames()}
}

// usesWMSvcURL reports whether the agent is reached through the WMSvc handler URL.
func (a RemoteAgent) usesWMSvcURL() bool {
	return a == WMSvc || a == None
}
