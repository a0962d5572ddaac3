// ABOUTME: Registry of the platform's entity descriptors
// ABOUTME: Endpoint paths, rule sets, columns, and form fields per type

package entity

// Project is the portfolio project entity
var Project = Descriptor{
	Name:       "project",
	Title:      "Project",
	Plural:     "Projects",
	CreatePath: "/project/add",
	DeleteMode: DeleteSoft,
	PageSize:   10,
	Multipart:  true,
	Rules: RuleSet{
		"title":            {Required: true, Min: 3},
		"shortDescription": {Required: true, Min: 10},
		"techStack":        {Required: true, Type: "array"},
		"featured_image":   {Required: true, Type: "file"},
		"status":           {Required: true},
		"description":      {Required: true},
	},
	Columns: []Column{
		{Title: "Title", Key: "title", Width: 28},
		{Title: "Slug", Key: "slug", Width: 22},
		{Title: "Type", Key: "projectType", Width: 10},
		{Title: "Status", Key: "status", Width: 10},
		{Title: "Created At", Key: "createdAt", Width: 16, Format: createdAt},
	},
	Fields: []Field{
		{Name: "title", Label: "Project Title", Placeholder: "My Awesome Project"},
		{Name: "shortDescription", Label: "Short Description", Placeholder: "Max 200 characters"},
		{Name: "description", Label: "Description", Kind: FieldMultiline},
		{Name: "techStack", Label: "Tags", Placeholder: "One tag per line", Kind: FieldMultiline, Lines: true},
		{Name: "liveUrl", Label: "Live URL", Placeholder: "https://..."},
		{Name: "githubUrl", Label: "GitHub URL", Placeholder: "https://github.com/..."},
		{Name: "projectType", Label: "Project Type", Kind: FieldSelect, Options: []string{"personal", "client", "startup"}},
		{Name: "status", Label: "Status", Kind: FieldSelect, Options: []string{"draft", "published"}},
		{Name: "isFeatured", Label: "Featured", Kind: FieldBool},
		{Name: "featured_image", Label: "Cover Image", Placeholder: "/path/to/image.png", Kind: FieldFile},
	},
}

// Code is the code entry entity: snippets, repositories, and resources
var Code = Descriptor{
	Name:       "code",
	Title:      "Code Entry",
	Plural:     "Code",
	CreatePath: "/code/create",
	DeleteMode: DeleteSoft,
	PageSize:   10,
	Filter:     &Filter{Param: "type", Values: []string{"snippets", "repository", "resources"}},
	VariantField: "type",
	RuleVariants: map[string]RuleSet{
		"snippets": {
			"title": {Required: true, Min: 3},
			"code":  {Required: true, Min: 3},
		},
		"repository": {
			"ownerName":      {Required: true, Min: 3},
			"repositoryName": {Required: true, Min: 3},
			"url":            {Required: true, Min: 3},
		},
		"resources": {
			"title":        {Required: true, Min: 3},
			"resourceType": {Required: true, Min: 3},
			"url":          {Required: true, Min: 3},
		},
	},
	Columns: []Column{
		{Title: "Title", Key: "title", Width: 32},
		{Title: "Type", Key: "type", Width: 12},
		{Title: "Created At", Key: "createdAt", Width: 16, Format: createdAt},
	},
	FieldVariants: map[string][]Field{
		"snippets": {
			{Name: "title", Label: "Title", Placeholder: "Snippet title"},
			{Name: "code", Label: "Code", Kind: FieldMultiline},
			{Name: "tags", Label: "Tags", Placeholder: "One tag per line", Kind: FieldMultiline, Lines: true},
		},
		"repository": {
			{Name: "ownerName", Label: "Owner Name", Placeholder: "octocat"},
			{Name: "repositoryName", Label: "Repository Name"},
			{Name: "url", Label: "URL", Placeholder: "https://github.com/..."},
		},
		"resources": {
			{Name: "title", Label: "Title"},
			{Name: "resourceType", Label: "Resource Type", Placeholder: "article, video, ..."},
			{Name: "url", Label: "URL", Placeholder: "https://..."},
		},
	},
}

// Admin is the platform administrator account entity.
// Password rules apply on create only; editing never touches passwords.
var Admin = Descriptor{
	Name:       "admin",
	Title:      "Admin",
	Plural:     "Admins",
	CreatePath: "/admin/add",
	DeleteMode: DeleteSoft,
	PageSize:   10,
	Rules: RuleSet{
		"firstName":       {Required: true, Min: 3},
		"lastName":        {Required: true, Min: 3},
		"mobile":          {Required: true, Min: 3},
		"email":           {Required: true, Min: 3},
		"password":        {Required: true, Min: 6, Type: "password"},
		"confirmPassword": {Required: true, Min: 6},
	},
	EditRules: RuleSet{
		"firstName": {Required: true, Min: 3},
		"lastName":  {Required: true, Min: 3},
		"mobile":    {Required: true, Min: 3},
		"email":     {Required: true, Min: 3},
	},
	Columns: []Column{
		{Title: "First Name", Key: "firstName", Width: 14},
		{Title: "Last Name", Key: "lastName", Width: 14},
		{Title: "Email", Key: "email", Width: 26},
		{Title: "Mobile", Key: "mobile", Width: 14},
		{Title: "Created At", Key: "createdAt", Width: 16, Format: createdAt},
	},
	Fields: []Field{
		{Name: "firstName", Label: "First Name", Placeholder: "Enter First Name"},
		{Name: "lastName", Label: "Last Name", Placeholder: "Enter Last Name"},
		{Name: "email", Label: "Email", Placeholder: "Enter Email"},
		{Name: "mobile", Label: "Mobile"},
		{Name: "password", Label: "Password", Kind: FieldPassword},
		{Name: "confirmPassword", Label: "Confirm Password", Kind: FieldPassword},
	},
}

// Tag is the content tag entity; creation is bulk via the tags intake
var Tag = Descriptor{
	Name:       "tag",
	Title:      "Tag",
	Plural:     "Tags",
	CreatePath: "/tag/create",
	DeleteMode: DeleteSoft,
	PageSize:   10,
	ReadOnly:   true, // created through the bulk tag intake, not a form
	Columns: []Column{
		{Title: "Tag", Key: "tag", Width: 24},
		{Title: "Slug", Key: "slug", Width: 24},
		{Title: "Created At", Key: "createdAt", Width: 16, Format: createdAt},
	},
}

// Contact is the contact inquiry entity: read-only with hard delete
var Contact = Descriptor{
	Name:       "contact",
	Title:      "Inquiry",
	Plural:     "Contacts",
	DeleteMode: DeleteHard,
	PageSize:   8,
	ReadOnly:   true,
	Columns: []Column{
		{Title: "Name", Key: "name", Width: 18},
		{Title: "Email", Key: "email", Width: 26},
		{Title: "Subject", Key: "subject", Width: 30},
		{Title: "Created At", Key: "createdAt", Width: 16, Format: createdAt},
	},
}

// Newsletter is the subscriber entity; deletes are permanent
var Newsletter = Descriptor{
	Name:       "newsletter",
	Title:      "Subscriber",
	Plural:     "Newsletter",
	DeleteMode: DeleteHard,
	DeletePath: "/newsletter/permanent",
	PageSize:   10,
	ReadOnly:   true,
	Columns: []Column{
		{Title: "Email", Key: "email", Width: 30},
		{Title: "Status", Key: "isBlocked", Width: 8, Format: subscriberStatus},
		{Title: "Created At", Key: "createdAt", Width: 16, Format: createdAt},
	},
}

// Settings is the singleton site settings document
var Settings = Descriptor{
	Name:      "settings",
	Title:     "Settings",
	Plural:    "Settings",
	Singleton: true,
	Fields: []Field{
		{Name: "siteName", Label: "Site Name"},
		{Name: "language", Label: "Language"},
		{Name: "copyrightText", Label: "Copyright Text"},
		{Name: "contactEmail", Label: "Contact Email"},
		{Name: "footerDescription", Label: "Footer Description", Kind: FieldMultiline},
		{Name: "facebookUrl", Label: "Facebook URL"},
		{Name: "instagramUrl", Label: "Instagram URL"},
		{Name: "twitterUrl", Label: "Twitter URL"},
		{Name: "linkedinUrl", Label: "LinkedIn URL"},
	},
}

// Registry returns all descriptors in menu order
func Registry() []Descriptor {
	return []Descriptor{Project, Code, Tag, Admin, Contact, Newsletter, Settings}
}

// Lookup finds a descriptor by its route-segment name
func Lookup(name string) (Descriptor, bool) {
	for _, d := range Registry() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

func createdAt(r Record) string {
	return FormatDate(r.String("createdAt"))
}

func subscriberStatus(r Record) string {
	if v, ok := r["isBlocked"].(bool); ok && v {
		return "Blocked"
	}
	return "Active"
}
