package browser

// ErrorTemplateAddress is the virtual address of the error-page template.
// Embedders may serve their own template from it through their Loader;
// the built-in one is the fallback so that reporting an error can itself
// never fail.
const ErrorTemplateAddress = "about:error"

// builtinErrorTemplate has two ordered substitution slots: the failed
// address and the error message. Both are HTML-escaped before
// substitution.
const builtinErrorTemplate = `<html>
<head><title>Error!</title></head>
<body bgcolor="#66b0ff">
<h1>Failed to load %s</h1>
<p>%s</p>
</body>
</html>`
