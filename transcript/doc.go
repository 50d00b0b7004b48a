// Package transcript records an auditable trail of workflow activity.
//
// Every run gets a transcript holding one turn per stage execution:
// classification, each retrieval and generation attempt, each review
// verdict, and the final decision. The file store persists transcripts as
// JSON under a runs/ directory, one subdirectory per run.
package transcript
