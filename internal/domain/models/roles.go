package models

import (
	"fmt"
	"github.com/samber/lo"
	"slices"
)

type Role string

const (
	AIMLEngineer     Role = "ai_ml_engineer"
	FrontendEngineer Role = "frontend_engineer"
	BackendEngineer  Role = "backend_engineer"
)

var roleRequirements = map[Role]string{
	AIMLEngineer: `Required Skills:
- Python, PyTorch/TensorFlow
- Machine Learning algorithms and frameworks
- Deep Learning and Neural Networks
- Data preprocessing and analysis
- MLOps and model deployment
- RAG, LLM, Finetuning and Prompt Engineering`,

	FrontendEngineer: `Required Skills:
- React/Vue.js/Angular
- HTML5, CSS3, JavaScript/TypeScript
- Responsive design
- State management
- Frontend testing`,

	BackendEngineer: `Required Skills:
- Python/Java/Node.js
- REST APIs
- Database design and management
- System architecture
- Cloud services (AWS/GCP/Azure)
- Kubernetes, Docker, CI/CD`,
}

func ToRole(s string) (Role, error) {
	role := Role(s)
	if _, ok := roleRequirements[role]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return role, nil
}

func (r Role) Requirements() string {
	return roleRequirements[r]
}

// Title is the human readable role name used in letters and meeting topics.
func (r Role) Title() string {
	switch r {
	case AIMLEngineer:
		return "AI/ML Engineer"
	case FrontendEngineer:
		return "Frontend Engineer"
	case BackendEngineer:
		return "Backend Engineer"
	default:
		return string(r)
	}
}

func Roles() []Role {
	roles := lo.Keys(roleRequirements)
	slices.Sort(roles)
	return roles
}

func RoleRequirements() map[Role]string {
	return lo.Assign(roleRequirements)
}
