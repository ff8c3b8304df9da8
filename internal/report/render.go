package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/mailbrief/mailbrief/internal/classify"
)

var categoryColors = map[classify.Category]template.CSS{
	classify.CategoryVinitaly:   "#f59e0b",
	classify.CategoryRocketbook: "#3b82f6",
	classify.CategoryInvoices:   "#6366f1",
	classify.CategoryClients:    "#10b981",
	classify.CategoryNewsletter: "#6b7280",
	classify.CategoryUrgent:     "#ef4444",
}

var priorityColors = map[classify.Priority]template.CSS{
	classify.PriorityHigh:   "#ef4444",
	classify.PriorityMedium: "#f59e0b",
	classify.PriorityLow:    "#10b981",
}

func categoryColor(c classify.Category) template.CSS {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return "#6b7280"
}

func priorityColor(p classify.Priority) template.CSS {
	if color, ok := priorityColors[p]; ok {
		return color
	}
	return "#6b7280"
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"categoryColor": categoryColor,
	"priorityColor": priorityColor,
}).Parse(reportHTML))

// RenderHTML serializes the report into a self-contained HTML document.
// Every free-text field goes through the template's contextual escaping;
// output is byte-identical for identical reports.
func RenderHTML(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Email Assistant Report</title>
  <style>
    * { box-sizing: border-box; margin: 0; padding: 0; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      line-height: 1.6;
      color: #1f2937;
      background: #f3f4f6;
      padding: 20px;
    }
    .container { max-width: 900px; margin: 0 auto; }
    .header {
      background: linear-gradient(135deg, #6366f1, #8b5cf6);
      color: white;
      padding: 30px;
      border-radius: 16px;
      margin-bottom: 24px;
    }
    .header h1 { font-size: 28px; margin-bottom: 8px; }
    .header p { opacity: 0.9; }
    .stats-grid {
      display: grid;
      grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
      gap: 16px;
      margin-bottom: 24px;
    }
    .stat-card {
      background: white;
      padding: 20px;
      border-radius: 12px;
      box-shadow: 0 1px 3px rgba(0,0,0,0.1);
      text-align: center;
    }
    .stat-number { font-size: 32px; font-weight: bold; color: #6366f1; }
    .stat-label { color: #6b7280; font-size: 14px; }
    .section {
      background: white;
      padding: 24px;
      border-radius: 12px;
      margin-bottom: 20px;
      box-shadow: 0 1px 3px rgba(0,0,0,0.1);
    }
    .section h2 { font-size: 20px; margin-bottom: 16px; }
    .category-tag {
      display: inline-block;
      padding: 4px 12px;
      margin: 4px;
      border-radius: 20px;
      font-size: 12px;
      font-weight: 500;
      color: white;
    }
    .email-item {
      padding: 16px;
      margin: 12px 0;
      background: #f9fafb;
      border-left: 4px solid #6366f1;
      border-radius: 8px;
    }
    .email-header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      margin-bottom: 8px;
    }
    .email-subject { font-weight: 600; font-size: 16px; }
    .email-from { color: #6b7280; font-size: 14px; }
    .priority-badge {
      display: inline-block;
      padding: 2px 8px;
      border-radius: 12px;
      font-size: 11px;
      font-weight: 600;
      text-transform: uppercase;
    }
    .draft-box {
      background: #f0fdf4;
      border: 1px solid #86efac;
      padding: 16px;
      border-radius: 8px;
      margin-top: 12px;
      font-family: monospace;
      font-size: 13px;
      white-space: pre-wrap;
    }
    .draft-label {
      font-weight: 600;
      color: #166534;
      margin-bottom: 8px;
      font-family: sans-serif;
    }
    .urgent-item { border-left-color: #ef4444; background: #fef2f2; }
    .action-list { list-style: none; }
    .action-list li {
      padding: 12px;
      margin: 8px 0;
      background: #f3f4f6;
      border-radius: 8px;
    }
    .footer {
      text-align: center;
      color: #9ca3af;
      font-size: 12px;
      padding: 20px;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>📧 Email Assistant Report</h1>
      <p>Account: {{.Account}} | Generato: {{.GeneratedAt}}</p>
    </div>

    <div class="stats-grid">
      <div class="stat-card">
        <div class="stat-number">{{.Summary.Total}}</div>
        <div class="stat-label">Email Analizzate</div>
      </div>
      <div class="stat-card">
        <div class="stat-number">{{len .Summary.Urgent}}</div>
        <div class="stat-label">Urgenti</div>
      </div>
      <div class="stat-card">
        <div class="stat-number">{{len .Summary.Drafts}}</div>
        <div class="stat-label">Draft Suggeriti</div>
      </div>
      <div class="stat-card">
        <div class="stat-number">{{len .Actions.ToReply}}</div>
        <div class="stat-label">Da Rispondere</div>
      </div>
    </div>
{{if .Summary.Urgent}}
    <div class="section">
      <h2>🚨 Email Urgenti</h2>
{{range .Summary.Urgent}}      <div class="email-item urgent-item">
        <div class="email-header">
          <div>
            <div class="email-subject">{{.Subject}}</div>
            <div class="email-from">{{.From}}</div>
          </div>
          <span class="priority-badge" style="background: {{priorityColor .Priority}}20; color: {{priorityColor .Priority}}">{{.Priority}}</span>
        </div>
        <div>{{range .Categories}}<span class="category-tag" style="background: {{categoryColor .}}">{{.}}</span>{{end}}</div>
      </div>
{{end}}    </div>
{{end}}{{if .Actions.ToReply}}
    <div class="section">
      <h2>💬 Email che Richiedono Risposta</h2>
{{range .Actions.ToReply}}      <div class="email-item">
        <div class="email-header">
          <div>
            <div class="email-subject">{{.Subject}}</div>
            <div class="email-from">{{.From}}</div>
          </div>
          <span class="priority-badge" style="background: {{priorityColor .Priority}}20; color: {{priorityColor .Priority}}">{{.Priority}}</span>
        </div>
        <div>{{range .Categories}}<span class="category-tag" style="background: {{categoryColor .}}">{{.}}</span>{{end}}</div>
{{if .SuggestedDraft}}        <div class="draft-box">
          <div class="draft-label">💡 Draft suggerito:</div>
          <strong>{{.SuggestedDraft.Subject}}</strong>

{{.SuggestedDraft.Body}}
        </div>
{{end}}      </div>
{{end}}    </div>
{{end}}
    <div class="section">
      <h2>📊 Categorie Rilevate</h2>
      <div>{{range .CategoryTally}}<span class="category-tag" style="background: {{categoryColor .Category}}">{{.Category}}: {{.Count}}</span>{{end}}</div>
    </div>
{{if .Actions.ToArchive}}
    <div class="section">
      <h2>🗑️ Email Suggerite per Archiviazione</h2>
      <ul class="action-list">
{{range .Actions.ToArchive}}        <li>📰 {{.Subject}} <span style="color: #9ca3af;">({{.From}})</span></li>
{{end}}      </ul>
    </div>
{{end}}{{if .Actions.ToReview}}
    <div class="section">
      <h2>📋 Email da Revisionare</h2>
      <ul class="action-list">
{{range .Actions.ToReview}}        <li>📄 {{.Subject}} <span style="color: #9ca3af;">({{.From}})</span></li>
{{end}}      </ul>
    </div>
{{end}}
    <div class="footer">
      <p>Report generato automaticamente da mailbrief</p>
    </div>
  </div>
</body>
</html>
`
