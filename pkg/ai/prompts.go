package ai

// CypherPrompt instructs the model to emit a single bare Cypher query for a
// natural-language question against the given schema. Interpolated with
// fmt.Sprintf(CypherPrompt, schema, question).
const CypherPrompt = `
# Task Context
You are a Neo4j Cypher expert. Generate ONLY a valid Cypher query.

# Background Data
Graph schema:
%s

# Detailed Task Description & Rules
- Output ONLY the Cypher query - no explanations, no markdown fences, no additional text.
- Use only the node labels, relationship types, and properties shown in the schema.
- Start your response directly with a Cypher clause such as MATCH, RETURN, CREATE, MERGE or CALL.
- Prefer a single statement; do not emit multiple queries.

# Immediate Task Description or Request
Question: %s

Cypher Query:`

// AnswerPrompt turns raw query results into a user-facing answer.
// Interpolated with fmt.Sprintf(AnswerPrompt, question, query, context).
const AnswerPrompt = `
# Task Context
You are an assistant that answers questions based on database query results.

# Background Data
Question: %s
Cypher Query: %s
Query Results: %s

# Detailed Task Description & Rules
- Use the query results to answer the question directly.
- If results contain data, present it clearly and concisely.
- Format the answer in a user-friendly way.
- Do not say "I don't know" if there are actual results.

Answer:`

// ValidatePrompt asks the model for a syntax verdict on a Cypher query when
// the database's own EXPLAIN path is unavailable. Interpolated with
// fmt.Sprintf(ValidatePrompt, query).
const ValidatePrompt = `
# Task Context
You are a Neo4j Cypher syntax checker.

# Background Data
Query:
%s

# Detailed Task Description & Rules
- Judge ONLY whether the query is syntactically valid Cypher.
- Do not execute the query or reason about whether it returns data.
- Report the first syntax problem you find, or an empty message if the query is valid.

# Output Formatting
Return a JSON object with this structure:
{
  "valid": <true|false>,
  "message": "<empty when valid, otherwise the syntax problem>"
}
`
