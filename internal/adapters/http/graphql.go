package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	localizedTextType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LocalizedText",
		Fields: graphql.Fields{
			"original":      &graphql.Field{Type: graphql.String},
			"ko":            &graphql.Field{Type: graphql.String},
			"en":            &graphql.Field{Type: graphql.String},
			"original_lang": &graphql.Field{Type: graphql.String},
		},
	})

	spotType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SmokingSpot",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"name":           &graphql.Field{Type: graphql.String},
			"name_localized": &graphql.Field{Type: localizedTextType},
			"lat":            &graphql.Field{Type: graphql.Float},
			"lng":            &graphql.Field{Type: graphql.Float},
			"type":           &graphql.Field{Type: graphql.String},
			"address":        &graphql.Field{Type: graphql.String},
			"memo":           &graphql.Field{Type: graphql.String},
			"business_hour":  &graphql.Field{Type: graphql.String},
			"has_roof":       &graphql.Field{Type: graphql.Boolean},
			"has_chair":      &graphql.Field{Type: graphql.Boolean},
			"is_enclosed":    &graphql.Field{Type: graphql.Boolean},
			"is_24_hours":    &graphql.Field{Type: graphql.Boolean},
			"photos":         &graphql.Field{Type: graphql.NewList(graphql.String)},
			"source":         &graphql.Field{Type: graphql.String},
			"country":        &graphql.Field{Type: graphql.String},
			"region":         &graphql.Field{Type: graphql.String},
			"district":       &graphql.Field{Type: graphql.String},
			"distance":       &graphql.Field{Type: graphql.Float},
		},
	})

	statisticsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Statistics",
		Fields: graphql.Fields{
			"total": &graphql.Field{Type: graphql.Int},
		},
	})

	statusType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LoadState",
		Fields: graphql.Fields{
			"phase":      &graphql.Field{Type: graphql.String},
			"is_loading": &graphql.Field{Type: graphql.Boolean},
			"progress":   &graphql.Field{Type: graphql.Int},
			"message":    &graphql.Field{Type: graphql.String},
			"error":      &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"spots": &graphql.Field{
				Type:        graphql.NewList(spotType),
				Description: "List spots with optional filters",
				Args: graphql.FieldConfigArgument{
					"country":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"region":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"district": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"type":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Spots.Filter(usecases.SpotFilter{
						Country:  p.Args["country"].(string),
						Region:   p.Args["region"].(string),
						District: p.Args["district"].(string),
						Type:     domain.SpotType(p.Args["type"].(string)),
					}), nil
				},
			},
			"spotsNearby": &graphql.Field{
				Type:        graphql.NewList(spotType),
				Description: "Find spots near a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 1000.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lng := p.Args["lng"].(float64)
					radius := p.Args["radius"].(float64)
					limit := p.Args["limit"].(int)
					return deps.Spots.Nearby(lat, lng, radius, limit), nil
				},
			},
			"searchSpots": &graphql.Field{
				Type:        graphql.NewList(spotType),
				Description: "Search spots by name or address across languages",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					limit := p.Args["limit"].(int)
					return deps.Spots.Search(q, limit), nil
				},
			},
			"spot": &graphql.Field{
				Type:        spotType,
				Description: "Get a spot by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Spots.GetByID(id)
				},
			},
			"statistics": &graphql.Field{
				Type:        statisticsType,
				Description: "Summary counts over the current collection",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Spots.Statistics(), nil
				},
			},
			"status": &graphql.Field{
				Type:        statusType,
				Description: "Loader state and progress",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Loader.State(), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
