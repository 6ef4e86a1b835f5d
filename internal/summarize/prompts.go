package summarize

const mapPrompt = `You are an analyst. Extract 3-6 FACTUAL investor-relevant bullets from the text.
Focus on: figures (revenue, EPS, margins, deliveries), guidance/roadmap, product/tech, regulation/supply chain, risks.
Avoid fluff/opinion. If nothing relevant, return 1 short bullet stating 'No material investor updates'.

Ticker: %s
Text:
"""
%s
"""

Return bullets with hyphens, 1 line each, no numbering.
`

const reducePrompt = `Deduplicate and condense the bullets below into 5-8 clean, non-overlapping, factual bullets for investors.
Keep numbers/units, tickers, and avoid repetition.

Ticker: %s

Bullets:
%s
`

const finalPrompt = `Write a concise investor summary for %s covering %s to %s.

TARGET LENGTH: approximately %d characters
ACCEPTABLE RANGE: %d-%d characters

Use the consolidated bullets below as your only source of truth.

PRIORITIES:
1. Financial metrics (revenue, earnings, EPS, margins, guidance)
2. Key business drivers
3. Material risks or opportunities
4. Strategic developments

Write in clear prose (not bullet points). Prioritize completeness over brevity - if critical
investment information requires slightly exceeding %d characters, that's acceptable.
Quality and accuracy matter more than hitting an exact character count.

Consolidated bullets:
%s
`
