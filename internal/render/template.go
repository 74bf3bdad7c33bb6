package render

import "html/template"

// The fixed page template. Styling matches the hand-built catalog pages the
// generator replaced.
var pageTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.PageTitle}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: #fff;
            padding: 20px;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
        }

        .header {
            display: flex;
            flex-direction: column;
            align-items: center;
            gap: 15px;
            margin-bottom: 40px;
        }

        .header img {
            max-width: 100%;
            height: auto;
        }

        .header .logo {
            max-width: 400px;
        }

        .header .title {
            max-width: 600px;
        }

        h1 {
            font-size: 2rem;
            margin-bottom: 30px;
            font-weight: 300;
            text-align: center;
        }

        .grid {
            display: grid;
            grid-template-columns: repeat(auto-fill, minmax(300px, 1fr));
            gap: 30px;
        }

        .artwork-card {
            background: #f9f9f9;
            border-radius: 2px;
            overflow: hidden;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            transition: box-shadow 0.2s;
        }

        .artwork-card:hover {
            box-shadow: 0 4px 12px rgba(0,0,0,0.15);
        }

        .artwork-image {
            width: 100%;
            height: 300px;
            background: #f9f9f9;
            display: flex;
            align-items: center;
            justify-content: center;
            padding: 20px;
        }

        .artwork-image img {
            max-width: 100%;
            max-height: 300px;
            width: auto;
            height: auto;
            object-fit: contain;
            display: block;
        }

        .artwork-info {
            padding: 20px;
        }

        .artwork-title {
            font-size: 1.1rem;
            font-weight: 600;
            margin-bottom: 8px;
            color: #222;
        }

        .artwork-meta {
            font-size: 0.9rem;
            color: #666;
            line-height: 1.6;
        }

        .artwork-meta div {
            margin-bottom: 4px;
        }

        .inv-number {
            font-family: monospace;
            color: #999;
            font-size: 0.85rem;
            margin-bottom: 8px;
        }

        .price {
            margin-top: 8px;
            font-weight: 600;
            color: #222;
        }

        .inquire-btn {
            display: block;
            width: 100%;
            margin-top: 15px;
            padding: 10px;
            background: #888;
            color: white;
            text-align: center;
            text-decoration: none;
            border-radius: 2px;
            font-size: 0.9rem;
            font-weight: 500;
            transition: background 0.2s;
        }

        .inquire-btn:hover {
            background: #666;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <img src="{{.HeaderLogo}}" alt="Logo" class="logo">
            <img src="{{.HeaderTitle}}" alt="{{.PageTitle}}" class="title">
        </div>
        <div class="grid">
{{- range .Entries}}
            <div class="artwork-card">
{{- if .ImagePath}}
                <div class="artwork-image">
                    <img src="{{.ImagePath}}" alt="{{.Title}}">
                </div>
{{- end}}
                <div class="artwork-info">
                    <div class="artwork-title">{{.Title}}</div>
                    <div class="artwork-meta">
{{- if .Inventory}}
                        <div class="inv-number">{{.Inventory}}</div>
{{- end}}
{{- if .Series}}
                        <div><strong>Series:</strong> {{.Series}}</div>
{{- end}}
{{- if .Year}}
                        <div><strong>Year:</strong> {{.Year}}</div>
{{- end}}
{{- if .Edition}}
                        <div><strong>Edition:</strong> {{.Edition}}</div>
{{- end}}
{{- if .ImageSize}}
                        <div><strong>Image:</strong> {{.ImageSize}}&quot;</div>
{{- end}}
{{- if .PaperSize}}
                        <div><strong>Paper:</strong> {{.PaperSize}}&quot;</div>
{{- end}}
{{- if .FrameSize}}
                        <div><strong>Frame:</strong> {{.FrameSize}}&quot;</div>
{{- end}}
{{- if .EditionDescription}}
                        <div style="margin-top: 10px; font-size: 0.85rem; line-height: 1.5;">{{.EditionDescription}}</div>
{{- end}}
{{- if .Medium}}
                        <div><strong>Medium:</strong> {{.Medium}}</div>
{{- end}}
{{- if .Price}}
                        <div class="price">${{.Price}}</div>
{{- end}}
{{- if .InquiryURL}}
                        <a href="{{.InquiryURL}}" class="inquire-btn">Inquire</a>
{{- end}}
{{- if .PurchaseURL}}
                        <a href="{{.PurchaseURL}}" class="inquire-btn" target="_blank">Purchase Info</a>
{{- end}}
                    </div>
                </div>
            </div>
{{- end}}
        </div>
    </div>
</body>
</html>
`))
