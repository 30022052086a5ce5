package pattern

import "strings"

// Builtin is a named fragment shipped with fingers.
type Builtin struct {
	Name    string
	Pattern string
}

var kubernetesResources = strings.Join([]string{
	`deployment\.app`, `binding`, `componentstatuse`, `configmap`, `endpoint`, `event`,
	`limitrange`, `namespace`, `node`, `persistentvolumeclaim`, `persistentvolume`, `pod`,
	`podtemplate`, `replicationcontroller`, `resourcequota`, `secret`, `serviceaccount`,
	`service`, `mutatingwebhookconfiguration\.admissionregistration\.k8s\.io`,
	`validatingwebhookconfiguration\.admissionregistration\.k8s\.io`,
	`customresourcedefinition\.apiextension\.k8s\.io`,
	`apiservice\.apiregistration\.k8s\.io`, `controllerrevision\.apps`,
	`daemonset\.apps`, `deployment\.apps`, `replicaset\.apps`, `statefulset\.apps`,
	`tokenreview\.authentication\.k8s\.io`,
	`localsubjectaccessreview\.authorization\.k8s\.io`,
	`selfsubjectaccessreviews\.authorization\.k8s\.io`,
	`selfsubjectrulesreview\.authorization\.k8s\.io`,
	`subjectaccessreview\.authorization\.k8s\.io`,
	`horizontalpodautoscaler\.autoscaling`, `cronjob\.batch`, `job\.batch`,
	`certificatesigningrequest\.certificates\.k8s\.io`,
	`events\.events\.k8s\.io`, `daemonset\.extensions`, `deployment\.extensions`,
	`ingress\.extensions`, `networkpolicies\.extensions`,
	`podsecuritypolicies\.extensions`, `replicaset\.extensions`,
	`networkpolicie\.networking\.k8s\.io`,
	`poddisruptionbudget\.policy`,
	`clusterrolebinding\.rbac\.authorization\.k8s\.io`,
	`clusterrole\.rbac\.authorization\.k8s\.io`,
	`rolebinding\.rbac\.authorization\.k8s\.io`,
	`role\.rbac\.authorization\.k8s\.io`,
	`storageclasse\.storage\.k8s\.io`,
}, "|")

// Builtins is the catalogue in alternation order. Earlier entries win when two
// fragments match at the same column.
var Builtins = []Builtin{
	{"ip", `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`},
	{"uuid", `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`},
	{"sha", `[0-9a-f]{7,128}`},
	{"digit", `[0-9]{4,}`},
	{"url", `((https?://|git@|git://|ssh://|ftp://|file:///)[^\s()\x22']+)`},
	{"path", `(([.\w\-~\$@]+)?(/[.\w\-@]+)+/?)`},
	{"hex", `(0x[0-9a-fA-F]+)`},
	{"kubernetes", `(` + kubernetesResources + `)[a-zA-Z0-9_#$%&+=/@-]+`},
	{"git-status", `(modified|deleted|deleted by us|new file): +(?P<match>.+)`},
	{"git-status-branch", `Your branch is up to date with '(?P<match>.*)'\.`},
	{"diff", `(---|\+\+\+) [ab]/(?P<match>.*)`},
}

// BuiltinPattern returns the fragment registered under name.
func BuiltinPattern(name string) (string, bool) {
	for _, b := range Builtins {
		if b.Name == name {
			return b.Pattern, true
		}
	}
	return "", false
}

// BuiltinNames lists the catalogue names in order.
func BuiltinNames() []string {
	names := make([]string, len(Builtins))
	for i, b := range Builtins {
		names[i] = b.Name
	}
	return names
}

// Resolve turns an "enabled" setting into fragments: "all", or a comma separated
// list of names. Unknown names are skipped.
func Resolve(enabled string) []string {
	enabled = strings.TrimSpace(enabled)
	if enabled == "all" {
		patterns := make([]string, len(Builtins))
		for i, b := range Builtins {
			patterns[i] = b.Pattern
		}
		return patterns
	}

	var patterns []string
	for _, name := range strings.Split(enabled, ",") {
		if p, ok := BuiltinPattern(strings.TrimSpace(name)); ok {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
