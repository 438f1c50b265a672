package api

import (
	"net/http"

	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/pkg/openapi"
)

// BuildSpec assembles the OpenAPI 3.1 document for the API module.
// Paths are relative to the base path, which is published as the server URL.
func BuildSpec(cfg *config.APIConfig, version string) *openapi.Spec {
	spec := openapi.NewSpec(cfg.Docs.Title, version)
	spec.SetDescription(cfg.Docs.Description)
	spec.AddServer(cfg.BasePath)

	spec.Components.AddSchemas(schemas())

	addCategoryPaths(spec)
	addPromptPaths(spec)

	return spec
}

func schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Category": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":    {Type: "string", Format: "uuid"},
				"name":  {Type: "string", Example: "Architecture"},
				"color": {Type: "string", Description: "Hex display color", Example: "#6366f1"},
				"icon":  {Type: "string", Description: "Icon identifier", Example: "building"},
			},
			Required: []string{"id", "name"},
		},
		"CategoryCreate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":  {Type: "string"},
				"color": {Type: "string"},
				"icon":  {Type: "string"},
			},
			Required: []string{"name"},
		},
		"CategoryUpdate": {
			Type:        "object",
			Description: "Partial update. Absent fields are left unchanged.",
			Properties: map[string]*openapi.Schema{
				"name":  {Type: "string"},
				"color": {Type: "string"},
				"icon":  {Type: "string"},
			},
		},
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"title":      {Type: "string"},
				"content":    {Type: "string"},
				"categoryId": {Type: "string", Format: "uuid", Description: "Owning category, null when uncategorized"},
				"createdAt":  {Type: "string", Format: "date-time"},
				"updatedAt":  {Type: "string", Format: "date-time"},
				"isFavorite": {Type: "boolean"},
			},
			Required: []string{"id", "title", "content", "createdAt", "updatedAt", "isFavorite"},
		},
		"PromptCreate": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":      {Type: "string"},
				"content":    {Type: "string"},
				"categoryId": {Type: "string", Format: "uuid"},
				"isFavorite": {Type: "boolean", Default: false},
			},
			Required: []string{"title", "content"},
		},
		"PromptUpdate": {
			Type:        "object",
			Description: "Partial update. Absent fields are left unchanged; a null categoryId uncategorizes the prompt.",
			Properties: map[string]*openapi.Schema{
				"title":      {Type: "string"},
				"content":    {Type: "string"},
				"categoryId": {Type: "string", Format: "uuid"},
				"isFavorite": {Type: "boolean"},
			},
		},
		"PromptSearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":          {Type: "integer", Example: 1},
				"page_size":     {Type: "integer", Example: 20},
				"search":        {Type: "string", Description: "Matches against title and content"},
				"sort":          {Type: "string", Example: "-created_at"},
				"categoryId":    {Type: "string", Format: "uuid"},
				"isFavorite":    {Type: "boolean"},
				"uncategorized": {Type: "boolean", Description: "Only prompts without a category"},
			},
		},
		"PromptPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Prompt")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"DeleteResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
			},
		},
	}
}

func addCategoryPaths(spec *openapi.Spec) {
	tags := []string{"Categories"}

	spec.Paths["/categories"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List categories",
			Tags:    tags,
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "All categories ordered by name",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Category")},
						},
					},
				},
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create category",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("CategoryCreate", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Created category", "Category"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/categories/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get category",
			Tags:       tags,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Category id")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Category", "Category"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Update category",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Category id")},
			RequestBody: openapi.RequestBodyJSON("CategoryUpdate", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Updated category", "Category"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
				http.StatusNotFound:   openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:     "Delete category",
			Description: "Deletes the category and uncategorizes its prompts. Succeeds even when the id does not exist.",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Category id")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Deletion acknowledged", "DeleteResult"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func addPromptPaths(spec *openapi.Spec) {
	tags := []string{"Prompts"}

	spec.Paths["/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List prompts",
			Tags:    tags,
			Responses: map[int]*openapi.Response{
				http.StatusOK: {
					Description: "All prompts, newest first",
					Content: map[string]*openapi.MediaType{
						"application/json": {
							Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Prompt")},
						},
					},
				},
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create prompt",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("PromptCreate", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Created prompt", "Prompt"),
				http.StatusBadRequest: openapi.ResponseRef("ValidationFailed"),
			},
		},
	}

	spec.Paths["/prompts/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search prompts",
			Description: "Paginated search with text matching and category or favorite filters.",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("PromptSearchRequest", false),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Page of prompts", "PromptPage"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/prompts/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get prompt",
			Tags:       tags,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Prompt", "Prompt"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Update prompt",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
			RequestBody: openapi.RequestBodyJSON("PromptUpdate", true),
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Updated prompt", "Prompt"),
				http.StatusBadRequest: openapi.ResponseRef("ValidationFailed"),
				http.StatusNotFound:   openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:     "Delete prompt",
			Description: "Succeeds even when the id does not exist.",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:         openapi.ResponseJSON("Deletion acknowledged", "DeleteResult"),
				http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/prompts/{id}/favorite"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Mark prompt as favorite",
			Tags:       tags,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Updated prompt", "Prompt"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/prompts/{id}/unfavorite"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Clear prompt favorite flag",
			Tags:       tags,
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt id")},
			Responses: map[int]*openapi.Response{
				http.StatusOK:       openapi.ResponseJSON("Updated prompt", "Prompt"),
				http.StatusNotFound: openapi.ResponseRef("NotFound"),
			},
		},
	}
}
