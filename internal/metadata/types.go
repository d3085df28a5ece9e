package metadata

// Project holds the resolved answers for one generated project.
type Project struct {
	FullName                      string `yaml:"full_name" json:"full_name"`
	Email                         string `yaml:"email" json:"email"`
	GitHubUsername                string `yaml:"github_username" json:"github_username"`
	GitHubOrgName                 string `yaml:"github_orgname" json:"github_orgname"`
	ProjectName                   string `yaml:"project_name" json:"project_name"`
	PackageDistName               string `yaml:"package_dist_name" json:"package_dist_name"`
	PackageDirName                string `yaml:"package_dir_name" json:"package_dir_name"`
	RepoName                      string `yaml:"repo_name" json:"repo_name"`
	ProjectShortDescription       string `yaml:"project_short_description" json:"project_short_description"`
	MinimumSupportedPythonVersion string `yaml:"minimum_supported_python_version" json:"minimum_supported_python_version"`
}

// Variable is one template variable. Default is a text/template expression
// evaluated over the answers given so far; for a choice variable the first
// choice is the default.
type Variable struct {
	Name    string
	Default string
	Choices []string
	// Hidden variables are never prompted for; they always take their default.
	Hidden bool
}

// Variable names.
const (
	FullName                      = "full_name"
	Email                         = "email"
	GitHubUsername                = "github_username"
	GitHubOrgName                 = "github_orgname"
	ProjectName                   = "project_name"
	PackageDistName               = "package_dist_name"
	PackageDirName                = "package_dir_name"
	RepoName                      = "repo_name"
	ProjectShortDescription       = "project_short_description"
	MinimumSupportedPythonVersion = "minimum_supported_python_version"
)

// Variables returns the template variables in prompt order.
func Variables() []Variable {
	return []Variable{
		{Name: FullName, Default: "Name or Organization"},
		{Name: Email},
		{Name: GitHubUsername},
		{Name: ProjectName, Default: "Your Project Name"},
		{Name: PackageDistName, Default: `{{ .project_name | lower | replace " " "-" }}`},
		{Name: PackageDirName, Default: `{{ .package_dist_name | lower | replace "-" "_" }}`},
		{Name: RepoName, Default: `{{ .package_dist_name }}`},
		{Name: ProjectShortDescription, Default: "Python package for doing science."},
		{Name: MinimumSupportedPythonVersion, Choices: []string{"3.6", "3.7", "3.8"}},
		{Name: GitHubOrgName, Default: `{{ .github_username }}`, Hidden: true},
	}
}

// FromValues builds a Project from a name → value map.
func FromValues(v map[string]string) Project {
	return Project{
		FullName:                      v[FullName],
		Email:                         v[Email],
		GitHubUsername:                v[GitHubUsername],
		GitHubOrgName:                 v[GitHubOrgName],
		ProjectName:                   v[ProjectName],
		PackageDistName:               v[PackageDistName],
		PackageDirName:                v[PackageDirName],
		RepoName:                      v[RepoName],
		ProjectShortDescription:       v[ProjectShortDescription],
		MinimumSupportedPythonVersion: v[MinimumSupportedPythonVersion],
	}
}

// Values returns the project as a name → value map, the form templates see.
func (p Project) Values() map[string]string {
	return map[string]string{
		FullName:                      p.FullName,
		Email:                         p.Email,
		GitHubUsername:                p.GitHubUsername,
		GitHubOrgName:                 p.GitHubOrgName,
		ProjectName:                   p.ProjectName,
		PackageDistName:               p.PackageDistName,
		PackageDirName:                p.PackageDirName,
		RepoName:                      p.RepoName,
		ProjectShortDescription:       p.ProjectShortDescription,
		MinimumSupportedPythonVersion: p.MinimumSupportedPythonVersion,
	}
}
