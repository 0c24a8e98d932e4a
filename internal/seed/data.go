package seed

import (
	"time"

	"github.com/acampos/folio/internal/post"
	"github.com/acampos/folio/internal/profile"
	"github.com/acampos/folio/internal/project"
	"github.com/acampos/folio/internal/resume"
)

// Sample content inserted on first boot so the site renders something before
// the owner edits it. Collections are upserted by natural key, so re-seeding
// never duplicates rows.

func str(s string) *string { return &s }

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year, month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func sampleProfile() profile.Profile {
	return profile.Profile{
		Name:     "Albert Campos",
		Title:    "Software Developer",
		Tagline:  "Full-stack developer shipping high-impact systems across legal tech and finance.",
		Summary:  str("Business-minded software developer with 6+ years building scalable backend services and React/Vue apps in finance and legal tech."),
		Location: str("San Antonio, TX"),
		Email:    str("hello@example.com"),
		Github:   str("https://github.com/acampos"),
		Linkedin: str("https://www.linkedin.com/in/albert-campos/"),
		Links: []profile.Link{
			{Label: "GitHub", URL: "https://github.com/acampos"},
			{Label: "LinkedIn", URL: "https://www.linkedin.com/in/albert-campos/"},
		},
	}
}

// sampleSkills seeds visible skills ordered by position in this list.
func sampleSkills() []string {
	return []string{
		"Go", "C#", "ASP.NET Core", "SQL", "PowerShell",
		"React", "Vue", "TypeScript", "JavaScript", "HTML5", "CSS3",
		"Azure App Services", "Azure Pipelines", "Docker", "CI/CD",
		"REST APIs", "Microservices", "OpenAPI",
		"SQL Server", "MariaDB", "Redis", "Performance Tuning",
		"Git", "Agile/Scrum", "TDD",
	}
}

func sampleProjects() []project.Project {
	return []project.Project{
		{
			Slug:        "phi-redactor",
			Title:       "PHI Redaction App",
			Description: "Service that identifies and redacts PHI from lab orders.",
			Tech:        []string{".NET 8", "Regex", "Azure"},
			Highlights:  []string{"Selective redaction by field", "Batch file processing", "Export sanitized outputs"},
		},
		{
			Slug:        "legal-automation",
			Title:       "Legal Automation Platform",
			Description: "Workflow engine for expunction processes with React front-end.",
			Tech:        []string{".NET", "React", "SQL Server"},
			Highlights:  []string{"Reduced manual steps by 60%", "Optimized T-SQL by 40%"},
		},
		{
			Slug:        "ai-legal-assistant-bot",
			Title:       "AI Legal Assistant Bot",
			Description: "Chatbot automating FAQs to reduce attorney workload.",
			Tech:        []string{"Azure Bot Service", ".NET", "Azure Functions"},
			Highlights:  []string{"Reduced attorney workload by ~40%", "Saved 15-20 staff hours/week"},
		},
		{
			Slug:        "enterprise-cloud-migration",
			Title:       "Enterprise Cloud Migration",
			Description: "Migration of IIS-hosted apps from AWS to Azure App Services.",
			Tech:        []string{"IIS", "Azure App Services", "CI/CD"},
			Highlights:  []string{"20% hosting cost savings", "Zero-downtime deploys via pipelines"},
		},
		{
			Slug:        "automated-expunction-engine",
			Title:       "Automated Expunction Engine",
			Description: "Microservice for expunction processing with advanced SQL validation and rules automation.",
			Tech:        []string{".NET", "SQL Server", "Microservices"},
			Highlights:  []string{"Accelerated case processing by ~30%", "Throughput >500 cases/month"},
		},
	}
}

func samplePosts() []post.Post {
	return []post.Post{
		{
			Slug:      "optimizing-tsql",
			Title:     "How I Optimized a Critical T-SQL Stored Procedure by 40%",
			Excerpt:   "Index tuning, sargability, and measured rollouts.",
			Published: time.Now().UTC().AddDate(0, 0, -18),
		},
		{
			Slug:      "ci-cd-azure-devops",
			Title:     "CI/CD in Azure DevOps: Practical Patterns",
			Excerpt:   "Pipelines, approvals, and safe deployments.",
			Published: time.Now().UTC().AddDate(0, 0, -7),
		},
	}
}

func sampleExperience() []resume.Experience {
	return []resume.Experience{
		{
			Company:  "Easy Expunctions",
			Role:     "Software Developer",
			Location: str("San Antonio, TX"),
			Start:    date(2022, 7, 1),
			End:      datePtr(2025, 2, 28),
			Highlights: []string{
				"Led end-to-end development of legal automation platforms supporting thousands of users.",
				"Delivered 15+ features with legal SMEs, reducing manual processing by ~30%.",
				"Refactored legacy code and T-SQL; improved DB performance by ~40%.",
				"Automated Azure DevOps pipelines; release time down ~60% with zero-downtime pushes.",
			},
			Tech: []string{".NET 8", "EF Core", "React", "Vue", "Azure DevOps", "SQL Server"},
		},
		{
			Company:  "IBC Bank",
			Role:     "Software Developer",
			Location: str("San Antonio, TX"),
			Start:    date(2019, 12, 1),
			End:      datePtr(2022, 7, 1),
			Highlights: []string{
				"Led lifecycle development of internal tools impacting 500+ employees.",
				"Built complex stored procedures and ETL; improved reporting accuracy.",
				"Standardized Git workflows; reduced merge conflicts by ~30%.",
			},
			Tech: []string{"ASP.NET", "C#", "SQL Server", "SSIS", "SSRS", "Git"},
		},
		{
			Company:  "Inspired eLearning",
			Role:     "Tier 3 Technical Support Analyst",
			Location: str("San Antonio, TX"),
			Start:    date(2018, 8, 1),
			End:      datePtr(2019, 12, 1),
			Highlights: []string{
				"Resolved complex LMS cases with ~98% SLA adherence.",
				"Shipped front-end enhancements reducing UI-related tickets by ~15%.",
			},
			Tech: []string{"HTML5", "CSS", "JavaScript"},
		},
	}
}

func sampleEducation() []resume.Education {
	return []resume.Education{
		{
			School:  "Western Governors University",
			Degree:  "B.S. in Software Development (In Progress; Expected 2027)",
			Start:   date(2024, 1, 1),
			End:     date(2027, 12, 1),
			Details: []string{"Focus: data structures, databases, SDLC"},
		},
	}
}

func sampleCertifications() []resume.Certification {
	return []resume.Certification{
		{Name: "ITIL Foundation", Issuer: str("AXELOS"), Expires: datePtr(2026, 11, 30)},
		{Name: "Argo Browser-Based Developer", Issuer: str("Argo"), Issued: datePtr(2021, 10, 1), Expires: datePtr(2022, 11, 1)},
		{Name: "Software Development Bootcamp", Issuer: str("Austin Coding Academy"), Issued: datePtr(2016, 6, 1)},
	}
}
