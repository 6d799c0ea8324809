package summarizer

// defaultPromptTemplate instructs the model to answer with exactly the two
// labeled lines the post-processing step looks for. The single %s receives
// the rendered transcript.
const defaultPromptTemplate = `Analyze the following conversation transcript and perform these tasks:
1. Extract the email address mentioned in the transcript, if any.
If it has a hyphen, remove that hyphen and give output in lowercase.
2. Provide a concise summary of the conversation.

Transcript:
%s

Output format:
Email: [email address or "None"]
Summary: [summary of the conversation]
`
