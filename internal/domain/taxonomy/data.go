package taxonomy

// defaultEntries is the static technology table. Order matters: later entries
// take over a variation already claimed by an earlier one ("asp.net" ends up
// owned by ASP.NET rather than C#).
var defaultEntries = []Entry{
	// Languages
	{Canonical: "JavaScript", Variations: []string{"javascript", "js", "es6", "es2015", "ecmascript", "vanilla js", "vanilla javascript"}},
	{Canonical: "TypeScript", Variations: []string{"typescript", "ts"}},
	{Canonical: "Python", Variations: []string{"python", "python2", "python3", "py"}},
	{Canonical: "Java", Variations: []string{"java", "java8", "java11", "java17", "j2ee"}},
	{Canonical: "C#", Variations: []string{"c#", "csharp", ".net", "dotnet", "asp.net"}},
	{Canonical: "C++", Variations: []string{"c++", "cpp"}},
	{Canonical: "PHP", Variations: []string{"php", "php7", "php8", "laravel", "symfony"}},
	{Canonical: "Ruby", Variations: []string{"ruby", "rails", "ruby on rails", "ror"}},
	{Canonical: "Go", Variations: []string{"go", "golang"}},
	{Canonical: "Rust", Variations: []string{"rust", "rustlang"}},
	{Canonical: "Swift", Variations: []string{"swift", "swiftui"}},
	{Canonical: "Kotlin", Variations: []string{"kotlin"}},

	// Frontend frameworks
	{Canonical: "React", Variations: []string{"react", "react.js", "reactjs", "react native", "next.js", "nextjs", "gatsby"}},
	{Canonical: "Angular", Variations: []string{"angular", "angularjs", "angular2+", "angular.js", "ng"}},
	{Canonical: "Vue", Variations: []string{"vue", "vue.js", "vuejs", "nuxt", "nuxt.js"}},
	{Canonical: "Svelte", Variations: []string{"svelte", "sveltekit"}},
	{Canonical: "jQuery", Variations: []string{"jquery", "jquery ui"}},

	// Frontend technologies
	{Canonical: "HTML/CSS", Variations: []string{"html", "html5", "css", "css3", "sass", "scss", "less", "stylus", "postcss", "tailwind", "bootstrap", "material ui", "mui"}},
	{Canonical: "Web Components", Variations: []string{"web components", "custom elements", "shadow dom"}},

	// Backend frameworks
	{Canonical: "Node.js", Variations: []string{"node", "node.js", "nodejs", "express", "express.js", "expressjs", "nest", "nest.js", "nestjs"}},
	{Canonical: "Django", Variations: []string{"django", "django rest framework", "drf"}},
	{Canonical: "Flask", Variations: []string{"flask"}},
	{Canonical: "Spring", Variations: []string{"spring", "spring boot", "spring framework", "spring cloud"}},
	{Canonical: "ASP.NET", Variations: []string{"asp.net", "asp.net core", "asp.net mvc"}},
	{Canonical: "Laravel", Variations: []string{"laravel"}},

	// Databases
	{Canonical: "SQL", Variations: []string{"sql", "mysql", "postgresql", "postgres", "oracle", "sql server", "tsql", "plsql"}},
	{Canonical: "MongoDB", Variations: []string{"mongodb", "mongoose", "mongo"}},
	{Canonical: "Redis", Variations: []string{"redis"}},
	{Canonical: "Elasticsearch", Variations: []string{"elasticsearch", "elk"}},
	{Canonical: "GraphQL", Variations: []string{"graphql", "apollo"}},

	// Cloud and DevOps
	{Canonical: "AWS", Variations: []string{"aws", "amazon web services", "ec2", "s3", "lambda", "cloudfront", "route53", "cloudwatch"}},
	{Canonical: "Azure", Variations: []string{"azure", "microsoft azure"}},
	{Canonical: "GCP", Variations: []string{"gcp", "google cloud", "google cloud platform"}},
	{Canonical: "Docker", Variations: []string{"docker", "dockerfile", "docker-compose"}},
	{Canonical: "Kubernetes", Variations: []string{"kubernetes", "k8s", "kubectl"}},
	{Canonical: "CI/CD", Variations: []string{"ci/cd", "jenkins", "github actions", "gitlab ci", "travis", "circle ci"}},

	// Testing
	{Canonical: "Testing", Variations: []string{"jest", "mocha", "jasmine", "cypress", "selenium", "pytest", "junit", "testng"}},

	// Tools and others
	{Canonical: "Git", Variations: []string{"git", "github", "gitlab", "bitbucket"}},
	{Canonical: "Agile", Variations: []string{"agile", "scrum", "kanban", "jira"}},
	{Canonical: "Build Tools", Variations: []string{"webpack", "babel", "grunt", "gulp", "vite", "rollup"}},
	{Canonical: "Package Managers", Variations: []string{"npm", "yarn", "pnpm", "pip", "maven", "gradle"}},
}

var defaultTaxonomy = mustNew(defaultEntries)

func mustNew(entries []Entry) *Taxonomy {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in technology taxonomy. It is constructed once at
// package init and never mutated; taxonomy updates ship with a redeploy.
func Default() *Taxonomy {
	return defaultTaxonomy
}
