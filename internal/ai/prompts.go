package ai

const documentAnalysisPrompt = `You are an expert in corporate training and compliance. Analyze the following document and extract key information for creating gamified training content.

Document Content:
%s

Please provide a structured analysis including:
1. Key topics and concepts
2. Important rules or guidelines
3. Common violations or mistakes
4. Risk level assessment
5. Training requirements
6. A concise summary

Format your response as a JSON object with the following structure:
{
  "keyTopics": ["topic1", "topic2"],
  "compliance": true,
  "riskLevel": "low" | "medium" | "high",
  "requiredTraining": true,
  "summary": "Brief summary of the document"
}`

const scenarioGenerationPrompt = `You are an expert game designer specializing in corporate training. Create engaging, realistic scenarios based on the following document analysis.

Document Analysis:
%s

Document Content:
%s

Create %d training scenarios with the following requirements:
- Each scenario should test understanding of key concepts
- Include realistic workplace situations
- Provide 4 multiple choice options with only one correct answer
- Include detailed explanations for why the correct answer is right
- Make scenarios engaging and relevant to employees

Format your response as a JSON array of scenarios:
[
  {
    "title": "Scenario title",
    "description": "Realistic workplace situation",
    "question": "What should you do?",
    "options": ["A", "B", "C", "D"],
    "correctAnswer": 0,
    "explanation": "Why this is correct",
    "topic": "relevant topic"
  }
]`

const scenarioRefinementPrompt = `Review and improve the following training scenario to ensure it is:
1. Clearly written and unambiguous
2. Relevant to workplace situations
3. Appropriately challenging
4. Educational and engaging

Original Scenario:
%s

Provide an improved version as a JSON object maintaining the same structure but with better clarity, realism, and educational value.`

const keyTopicsPrompt = `Extract the main topics and concepts from this document. Return only a JSON array of strings.

Document: %s

Return format: ["topic1", "topic2", "topic3"]`

const summaryPrompt = `Summarize the following document in %d words or less. Focus on the key points and requirements.

Document: %s`
