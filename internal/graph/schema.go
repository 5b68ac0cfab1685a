package graph

import (
	"github.com/graphql-go/graphql"

	"baseball-graph-service/internal/domain/lineups"
	"baseball-graph-service/internal/domain/players"
)

// NewSchema assembles the executable schema around resolver. The type
// declarations are a fixed contract; all behavior lives in the resolver and
// the services behind it.
func NewSchema(resolver *Resolver) (graphql.Schema, error) {
	profileType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"name":    &graphql.Field{Type: graphql.String},
			"country": &graphql.Field{Type: graphql.String},
			"year":    &graphql.Field{Type: graphql.Int},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"atBats":             &graphql.Field{Type: graphql.Int},
			"hits":               &graphql.Field{Type: graphql.Int},
			"homeRuns":           &graphql.Field{Type: graphql.Int},
			"strikeouts":         &graphql.Field{Type: graphql.Int},
			"battingAverage":     &graphql.Field{Type: graphql.Float},
			"sluggingPercentage": &graphql.Field{Type: graphql.Float},
		},
	})

	playerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Player",
		Fields: graphql.Fields{
			"playerId": &graphql.Field{Type: graphql.String},
			"profile": &graphql.Field{
				Type:    profileType,
				Resolve: resolver.resolveProfile,
			},
			"stats": &graphql.Field{
				Type:    statsType,
				Resolve: resolver.resolveStats,
			},
		},
	})

	lineupFields := graphql.Fields{
		"lineupId": &graphql.Field{Type: graphql.Int},
		// Declared by the contract; nothing populates it yet.
		"average": &graphql.Field{Type: statsType},
	}
	for _, pos := range lineups.Positions() {
		pos := pos
		lineupFields[string(pos)] = &graphql.Field{
			Type: playerType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				l, ok := p.Source.(lineups.Lineup)
				if !ok {
					return nil, nil
				}
				if id, ok := l.PlayerID(pos); ok {
					return players.Player{ID: id}, nil
				}
				return nil, nil
			},
		}
	}
	lineupType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Lineup",
		Fields: lineupFields,
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"player": &graphql.Field{
				Type: playerType,
				Args: graphql.FieldConfigArgument{
					"playerId": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: resolver.resolvePlayer,
			},
			"players": &graphql.Field{
				Type: graphql.NewList(playerType),
				Args: graphql.FieldConfigArgument{
					"firstName": &graphql.ArgumentConfig{Type: graphql.String},
					"lastName":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: resolver.resolvePlayers,
			},
			"lineup": &graphql.Field{
				Type: lineupType,
				Args: graphql.FieldConfigArgument{
					"lineupId": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: resolver.resolveLineupQuery,
			},
		},
	})

	mutationArgs := graphql.FieldConfigArgument{
		"lineupId": &graphql.ArgumentConfig{Type: graphql.Int},
	}
	for _, pos := range lineups.Positions() {
		mutationArgs[string(pos)] = &graphql.ArgumentConfig{Type: graphql.String}
	}
	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"lineup": &graphql.Field{
				Type:    lineupType,
				Args:    mutationArgs,
				Resolve: resolver.resolveLineupMutation,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
