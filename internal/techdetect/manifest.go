package techdetect

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// pythonPackages maps dependency name fragments in Python manifests to labels.
var pythonPackages = map[string]string{
	"django":     "Django",
	"flask":      "Flask",
	"fastapi":    "FastAPI",
	"pytest":     "Pytest",
	"sqlalchemy": "SQLAlchemy",
	"pandas":     "Pandas",
	"numpy":      "NumPy",
	"langchain":  "LangChain",
	"celery":     "Celery",
	"requests":   "Requests",
}

// nodePackages maps package.json dependency names to labels.
var nodePackages = map[string]string{
	"react":      "React",
	"vue":        "Vue.js",
	"express":    "Express",
	"next":       "Next.js",
	"typescript": "TypeScript",
	"jest":       "Jest",
	"webpack":    "Webpack",
	"eslint":     "ESLint",
}

// goPackages maps go.mod module path fragments to labels.
var goPackages = map[string]string{
	"gin-gonic/gin":    "Gin",
	"labstack/echo":    "Echo",
	"spf13/cobra":      "Cobra",
	"gorm.io/gorm":     "GORM",
	"grpc":             "gRPC",
	"stretchr/testify": "Testify",
}

// serviceImages maps compose service image fragments to labels.
var serviceImages = map[string]string{
	"postgres":      "PostgreSQL",
	"mysql":         "MySQL",
	"mariadb":       "MariaDB",
	"redis":         "Redis",
	"mongo":         "MongoDB",
	"rabbitmq":      "RabbitMQ",
	"nginx":         "Nginx",
	"kafka":         "Kafka",
	"elasticsearch": "Elasticsearch",
	"memcached":     "Memcached",
}

// scanManifests inspects well-known files at the repository root. Missing or
// malformed manifests contribute nothing.
func scanManifests(repoPath string) []string {
	var labels []string

	labels = append(labels, scanPythonManifests(repoPath)...)
	labels = append(labels, scanPackageJSON(repoPath)...)
	labels = append(labels, scanGoMod(repoPath)...)
	labels = append(labels, scanCompose(repoPath)...)

	if fileExists(filepath.Join(repoPath, "Dockerfile")) {
		labels = append(labels, "Docker")
	}
	return labels
}

func scanPythonManifests(repoPath string) []string {
	var labels []string
	for _, name := range []string{"requirements.txt", "pyproject.toml", "Pipfile"} {
		data, err := os.ReadFile(filepath.Join(repoPath, name))
		if err != nil {
			continue
		}
		content := strings.ToLower(string(data))
		for fragment, label := range pythonPackages {
			if strings.Contains(content, fragment) {
				labels = append(labels, label)
			}
		}
	}
	return labels
}

func scanPackageJSON(repoPath string) []string {
	data, err := os.ReadFile(filepath.Join(repoPath, "package.json"))
	if err != nil {
		return nil
	}

	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}

	labels := []string{"Node.js"}
	for _, deps := range []map[string]string{manifest.Dependencies, manifest.DevDependencies} {
		for name := range deps {
			if label, ok := nodePackages[strings.ToLower(name)]; ok {
				labels = append(labels, label)
			}
		}
	}
	return labels
}

func scanGoMod(repoPath string) []string {
	data, err := os.ReadFile(filepath.Join(repoPath, "go.mod"))
	if err != nil {
		return nil
	}
	content := strings.ToLower(string(data))

	labels := []string{"Go Modules"}
	for fragment, label := range goPackages {
		if strings.Contains(content, fragment) {
			labels = append(labels, label)
		}
	}
	return labels
}

func scanCompose(repoPath string) []string {
	var data []byte
	for _, name := range []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"} {
		d, err := os.ReadFile(filepath.Join(repoPath, name))
		if err == nil {
			data = d
			break
		}
	}
	if data == nil {
		return nil
	}

	var compose struct {
		Services map[string]struct {
			Image string `yaml:"image"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal(data, &compose); err != nil {
		return []string{"Docker Compose"}
	}

	labels := []string{"Docker Compose"}
	for name, svc := range compose.Services {
		haystack := strings.ToLower(svc.Image + " " + name)
		for fragment, label := range serviceImages {
			if strings.Contains(haystack, fragment) {
				labels = append(labels, label)
			}
		}
	}
	return labels
}

// scanImports looks for well-known framework imports in one source file's
// sampled content. Manifests are the primary signal; this catches projects
// that vendor dependencies or skip a manifest entirely.
func scanImports(rel string, content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := string(content)

	var labels []string
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".py":
		for pkg, label := range pythonPackages {
			if strings.Contains(text, "import "+pkg) || strings.Contains(text, "from "+pkg) {
				labels = append(labels, label)
			}
		}
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx":
		for pkg, label := range nodePackages {
			if strings.Contains(text, "'"+pkg+"'") || strings.Contains(text, `"`+pkg+`"`) {
				labels = append(labels, label)
			}
		}
	}
	return labels
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
