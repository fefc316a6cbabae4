package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

var (
	apps  = []string{"lamp/internal/designapp", "lamp/internal/thermoapp", "lamp/cmd/"}
	clis  = []string{"lamp/internal/designcli", "lamp/internal/thermocli"}
	sinks = []string{"lamp/internal/store", "lamp/internal/metrics", "lamp/internal/tracing"}
)

func join(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"lamp/pkg/api":            {"lamp/internal/", "lamp-core/"},
		"lamp/internal/pretty":    join(apps, clis, sinks, []string{"lamp/internal/writers", "lamp/internal/config"}),
		"lamp/internal/writers":   join(apps, clis, sinks, []string{"lamp/internal/config"}),
		"lamp/internal/encode":    {"lamp/"},
		"lamp/internal/config":    join(apps, clis, sinks, []string{"lamp/internal/writers", "lamp/internal/pretty"}),
		"lamp/internal/store":     join(apps, clis, []string{"lamp/internal/writers", "lamp/internal/pretty", "lamp/internal/metrics"}),
		"lamp/internal/metrics":   join(apps, clis, []string{"lamp/internal/writers", "lamp/internal/pretty", "lamp/internal/store"}),
		"lamp/internal/designcli": join(apps, sinks),
		"lamp/internal/thermocli": join(apps, sinks, []string{"lamp/internal/config"}),
		"lamp/internal/appshell":  {"lamp/"},
		"lamp/internal/tracing":   {"lamp/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "lamp/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix && !strings.HasPrefix(imp, prefix+"/") {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "lamp/") && !strings.HasPrefix(dep, "lamp-core/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
