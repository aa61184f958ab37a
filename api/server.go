package api

import (
	"context"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/api/controllers"
	"github.com/alex-pricope/hackathon-scoring/api/transport"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/alex-pricope/hackathon-scoring/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"os"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	stores, teamStorage, err := s.newStores(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to create storage: %v", err)
		panic("failed to create storage")
	}

	r := s.Handler(gin.DebugMode, stores, teamStorage)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// Handler builds the scoring engine over the given stores and registers
// every controller on a new router.
func (s *Server) Handler(ginMode string, stores scoring.Stores, teamStorage storage.TeamStorage) *gin.Engine {
	auth := transport.NewAuthenticator(s.config.JWTSecret, s.config.AdminToken)
	r := transport.NewRouter(ginMode, auth)

	engine := scoring.NewEngine(stores, scoring.Options{
		Policy: scoring.AggregationPolicy{
			IncludeDrafts:   s.config.IncludeDrafts,
			ConflictRetries: s.config.ConflictRetries,
		},
		MaxWorkers: s.config.MaxWorkers,
	})

	//Register controllers
	evaluationController := controllers.NewEvaluationController(engine.Evaluations)
	evaluationController.RegisterRoutes(r)
	resultsController := controllers.NewResultsController(engine, teamStorage)
	resultsController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(engine.Admin)
	adminController.RegisterRoutes(r)

	return r
}

func (s *Server) newStores(ctx context.Context) (scoring.Stores, storage.TeamStorage, error) {
	if s.config.Driver == StorageDriverMemory {
		logging.Log.Warn("Using in-memory storage, nothing will be persisted")
		mem := storage.NewMemory()
		if s.config.SeedFile == "" {
			logging.Log.Warn("No storage.seedFile set, the registry is empty")
		} else {
			seed, err := LoadSeed(s.config.SeedFile)
			if err != nil {
				return scoring.Stores{}, nil, err
			}
			if err := seed.Apply(mem); err != nil {
				return scoring.Stores{}, nil, fmt.Errorf("apply seed: %w", err)
			}
		}
		return scoring.Stores{
			Registry: scoring.Registry{
				Hackathons: mem.Hackathons,
				Rounds:     mem.Rounds,
				Criteria:   mem.Criteria,
			},
			Submissions: mem.Submissions,
			Evaluations: mem.Evaluations,
			Results:     mem.Results,
		}, mem.Teams, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return scoring.Stores{}, nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if s.config.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.config.Endpoint)
		}
	})

	stores := scoring.Stores{
		Registry: scoring.Registry{
			Hackathons: &storage.DynamoHackathonStorage{Client: dynamoClient, TableName: s.config.TableNameHackathons},
			Rounds:     &storage.DynamoRoundStorage{Client: dynamoClient, TableName: s.config.TableNameRounds},
			Criteria:   &storage.DynamoCriteriaStorage{Client: dynamoClient, TableName: s.config.TableNameCriteria},
		},
		Submissions: &storage.DynamoSubmissionStorage{Client: dynamoClient, TableName: s.config.TableNameSubmissions},
		Evaluations: &storage.DynamoEvaluationStorage{Client: dynamoClient, TableName: s.config.TableNameEvaluations},
		Results:     &storage.DynamoResultStorage{Client: dynamoClient, TableName: s.config.TableNameResults},
	}
	teamStorage := &storage.DynamoTeamStorage{Client: dynamoClient, TableName: s.config.TableNameTeams}

	return stores, teamStorage, nil
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
