// Package e2e provides end-to-end tests: a generated corpus written to disk
// in every supported format, loaded and queried through the real engine.
package e2e

import (
	"fmt"
	"strings"
	"unicode"
)

// QueryTestCase defines a query and the corpus lines that must be returned.
type QueryTestCase struct {
	Query         string
	ExpectedLines []string
	Description   string
}

// Corpus holds the corpus lines and query test cases for E2E tests.
type Corpus struct {
	Lines        []string
	TestCases    []QueryTestCase
	TotalDocs    int
	TotalQueries int
}

var topics = []struct {
	title   string
	content string
}{
	{"Python Guide", "Python is a high-level programming language used for web development and data science."},
	{"Kubernetes Docs", "Kubernetes container orchestration automates deployment and scaling."},
	{"React Tutorial", "React hooks and components enable building user interfaces."},
	{"Go Language", "Go golang concurrency is achieved with goroutines and channels."},
	{"PostgreSQL Manual", "PostgreSQL relational database supports JSON and full-text search."},
	{"Docker Handbook", "Docker images are portable across environments."},
	{"Machine Learning", "Machine learning algorithms learn patterns from data."},
	{"Neural Networks", "Neural networks are inspired by the brain and power modern AI."},
	{"GraphQL Overview", "GraphQL lets clients request exactly what they need."},
	{"TypeScript Handbook", "TypeScript adds static types and catches errors at compile time."},
	{"Redis Cache", "Redis is an in-memory store used for sessions."},
	{"Elasticsearch Guide", "Elasticsearch is an analytics engine that scales horizontally."},
	{"Terraform IaC", "Terraform manages cloud infrastructure declaratively."},
	{"Prometheus Metrics", "Prometheus scrapes time-series monitoring metrics."},
	{"OAuth Flows", "OAuth enables secure delegated access."},
	{"Git Workflow", "Git tracks changes in source code."},
	{"Kafka Streams", "Apache Kafka handles high throughput event streams."},
	{"Nginx Config", "Nginx balances load and serves static files."},
	{"Cryptography Basics", "Cryptography secures data with keys and ciphers."},
	{"Event Sourcing", "Event sourcing stores state as an append-only log."},
	{"Agile Scrum", "A Scrum sprint typically lasts two weeks."},
	{"Unit Testing", "Unit tests verify small units; a mock isolates dependencies."},
	{"Rate Limiting", "Rate limiting protects APIs with throttling."},
	{"Circuit Breaker", "A circuit breaker stops cascading failures and fails fast."},
	{"Password Hashing", "Passwords must be hashed; bcrypt resists rainbow tables."},
	{"Graph Database", "Neo4j stores nodes and edges for relationships."},
	{"Document Store", "MongoDB stores BSON documents with flexible schemas."},
	{"CAP Theorem", "CAP says consistency availability and partition tolerance cannot all hold."},
	{"Chaos Engineering", "Chaos experiments use fault injection to test resilience."},
	{"Canary Release", "A canary rollout reduces blast radius."},
	{"Graceful Shutdown", "Graceful shutdown drains connections on SIGTERM."},
	{"Secrets Management", "Vault encrypts and audits secrets."},
	{"Service Mesh", "Istio provides mTLS and observability between services."},
	{"Fuzz Testing", "Fuzzing feeds random input to find edge cases."},
}

// candidateQueries are single keywords; only those occurring in exactly one
// corpus line become test cases.
var candidateQueries = []string{
	"python", "kubernetes", "react", "golang", "postgresql", "docker", "neural",
	"graphql", "typescript", "redis", "elasticsearch", "terraform", "prometheus",
	"oauth", "git", "kafka", "nginx", "cryptography", "scrum", "bcrypt", "neo4j",
	"mongodb", "cap", "canary", "sigterm", "vault", "istio", "fuzzing",
	"data", "stores",
}

// BuildCorpus returns one line per topic and the query test cases that have
// a single expected line.
func BuildCorpus() *Corpus {
	lines := make([]string, len(topics))
	for i, t := range topics {
		lines[i] = fmt.Sprintf("%s: %s", t.title, t.content)
	}
	cases := buildQueryTestCases(lines)
	return &Corpus{
		Lines:        lines,
		TestCases:    cases,
		TotalDocs:    len(lines),
		TotalQueries: len(cases),
	}
}

func buildQueryTestCases(lines []string) []QueryTestCase {
	occurrences := make(map[string][]string)
	for _, line := range lines {
		seen := make(map[string]bool)
		for _, w := range words(line) {
			if !seen[w] {
				seen[w] = true
				occurrences[w] = append(occurrences[w], line)
			}
		}
	}

	var cases []QueryTestCase
	var unique []string
	for _, q := range candidateQueries {
		if len(occurrences[q]) != 1 {
			continue
		}
		unique = append(unique, q)
		cases = append(cases, QueryTestCase{
			Query:         q,
			ExpectedLines: occurrences[q],
			Description:   fmt.Sprintf("query %q returns its only line", q),
		})
	}
	// Pairs of unique keywords return both lines.
	for i := 0; i+1 < len(unique); i += 2 {
		a, b := unique[i], unique[i+1]
		if occurrences[a][0] == occurrences[b][0] {
			continue
		}
		cases = append(cases, QueryTestCase{
			Query:         strings.ToUpper(a) + " " + b,
			ExpectedLines: []string{occurrences[a][0], occurrences[b][0]},
			Description:   fmt.Sprintf("query %q returns both lines", a+" "+b),
		})
	}
	return cases
}

// words splits s into lowercase word tokens (letters, digits and underscore).
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r))
	})
}
